package route

import (
	"github.com/Super-Badmen-Viper/PitchPlease/api/controller"
	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/gin-gonic/gin"
)

func NewSearchRouter(provider domain.AlbumSearchProvider, group *gin.RouterGroup) {
	searchCtrl := controller.NewSearchController(provider)

	group.GET("/search/albums", searchCtrl.SearchAlbums)
}
