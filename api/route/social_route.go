package route

import (
	"time"

	"github.com/Super-Badmen-Viper/PitchPlease/api/controller"
	"github.com/Super-Badmen-Viper/PitchPlease/usecase"
	"github.com/gin-gonic/gin"
)

func NewSocialRouter(timeout time.Duration, repos *Repositories, group *gin.RouterGroup) {
	socialUsecase := usecase.NewSocialUsecase(repos.Social, timeout)
	socialCtrl := controller.NewSocialController(socialUsecase)

	group.POST("/friends/requests", socialCtrl.SendFriendRequest)
	group.POST("/friends/requests/:id/accept", socialCtrl.AcceptFriendRequest)
	group.DELETE("/friends/requests/:id", socialCtrl.DeclineFriendRequest)
	group.GET("/friends", socialCtrl.Friends)
	group.GET("/friends/requests/pending", socialCtrl.PendingRequests)
	group.GET("/friends/requests/sent", socialCtrl.SentRequests)

	group.POST("/ratings/:id/likes", socialCtrl.LikeRating)
	group.DELETE("/ratings/:id/likes", socialCtrl.UnlikeRating)
	group.GET("/ratings/:id/likes", socialCtrl.Likes)

	group.POST("/ratings/:id/comments", socialCtrl.AddComment)
	group.DELETE("/comments/:id", socialCtrl.RemoveComment)
	group.GET("/ratings/:id/comments", socialCtrl.Comments)

	group.GET("/feed/activities", socialCtrl.ActivityFeed)
}
