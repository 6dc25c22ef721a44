package controller

import (
	"net/http"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/gin-gonic/gin"
)

type SearchController struct {
	Provider domain.AlbumSearchProvider
}

func NewSearchController(provider domain.AlbumSearchProvider) *SearchController {
	return &SearchController{Provider: provider}
}

// SearchAlbums 按关键词搜索外部专辑目录
func (c *SearchController) SearchAlbums(ctx *gin.Context) {
	query := ctx.Query("q")
	if query == "" {
		ErrorResponse(ctx, http.StatusBadRequest, "MISSING_PARAMS", "必须提供q参数")
		return
	}

	albums, err := c.Provider.SearchAlbums(ctx.Request.Context(), query)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	SuccessResponse(ctx, "albums", albums, len(albums))
}
