package route

import (
	"time"

	"github.com/Super-Badmen-Viper/PitchPlease/api/controller"
	"github.com/Super-Badmen-Viper/PitchPlease/usecase"
	"github.com/gin-gonic/gin"
)

func NewRatingRouter(timeout time.Duration, repos *Repositories, group *gin.RouterGroup) {
	ratingUsecase := usecase.NewRatingUsecase(repos.Rating, repos.Social, timeout)
	ratingCtrl := controller.NewRatingController(ratingUsecase)

	group.POST("/ratings", ratingCtrl.SubmitRating)
	group.PUT("/ratings/:id", ratingCtrl.UpdateRating)
	group.DELETE("/ratings/:id", ratingCtrl.DeleteRating)
	group.GET("/ratings/me", ratingCtrl.MyRatings)
	group.GET("/ratings/me/stats", ratingCtrl.MyStats)
	group.GET("/ratings/feed", ratingCtrl.PublicFeed)
	group.GET("/albums/:albumId/ratings", ratingCtrl.AlbumRatings)
	group.GET("/albums/:albumId/ratings/average", ratingCtrl.AlbumAverage)
}
