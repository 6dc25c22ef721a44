package route

import (
	"time"

	"github.com/Super-Badmen-Viper/PitchPlease/api/controller"
	"github.com/Super-Badmen-Viper/PitchPlease/usecase"
	"github.com/gin-gonic/gin"
)

func NewPlaylistRouter(timeout time.Duration, repos *Repositories, group *gin.RouterGroup) {
	playlistUsecase := usecase.NewPlaylistUsecase(repos.Playlist, repos.Rating, repos.Social, repos.User, timeout)
	playlistCtrl := controller.NewPlaylistController(playlistUsecase)

	group.POST("/playlists", playlistCtrl.Create)
	group.POST("/playlists/smart", playlistCtrl.CreateSmart)
	group.GET("/playlists", playlistCtrl.Visible)
	group.GET("/playlists/:id", playlistCtrl.Get)
	group.PUT("/playlists/:id", playlistCtrl.UpdateInfo)
	group.DELETE("/playlists/:id", playlistCtrl.Delete)
	group.GET("/playlists/:id/albums", playlistCtrl.Albums)
	group.POST("/playlists/:id/albums", playlistCtrl.AddAlbum)
	group.DELETE("/playlists/:id/albums/:albumId", playlistCtrl.RemoveAlbum)
}
