package route

import (
	"time"

	"github.com/Super-Badmen-Viper/PitchPlease/api/controller"
	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/Super-Badmen-Viper/PitchPlease/usecase"
	"github.com/gin-gonic/gin"
)

func NewRecommendRouter(timeout time.Duration, repos *Repositories, provider domain.AlbumSearchProvider, group *gin.RouterGroup) {
	// 推荐生成含多次外部查询，超时额度放宽
	recommendUsecase := usecase.NewRecommendUsecase(
		repos.Rating, repos.Profile, repos.Recommend, provider, nil, nil, timeout*10)
	recommendCtrl := controller.NewRecommendController(recommendUsecase)

	group.POST("/recommendations/generate", recommendCtrl.Generate)
	group.GET("/recommendations", recommendCtrl.Current)
	group.GET("/recommendations/recent", recommendCtrl.HasRecent)
	group.DELETE("/recommendations/:id", recommendCtrl.MarkSeen)
	group.POST("/profile/music/rebuild", recommendCtrl.Profile)
}
