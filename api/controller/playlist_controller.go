package controller

import (
	"net/http"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/gin-gonic/gin"
)

type PlaylistController struct {
	PlaylistUsecase domain.PlaylistUsecase
}

func NewPlaylistController(uc domain.PlaylistUsecase) *PlaylistController {
	return &PlaylistController{PlaylistUsecase: uc}
}

type createPlaylistRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

func (c *PlaylistController) Create(ctx *gin.Context) {
	var request createPlaylistRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMS", err.Error())
		return
	}

	userID := ctx.GetString("x-user-id")
	playlist, err := c.PlaylistUsecase.Create(ctx.Request.Context(), request.Name, request.Description, userID, request.IsPublic)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, playlist)
}

type createSmartPlaylistRequest struct {
	Name      string `json:"name" binding:"required"`
	MinRating int    `json:"min_rating" binding:"required"`
}

// CreateSmart 按评分阈值生成快照歌单
func (c *PlaylistController) CreateSmart(ctx *gin.Context) {
	var request createSmartPlaylistRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMS", err.Error())
		return
	}

	userID := ctx.GetString("x-user-id")
	playlist, err := c.PlaylistUsecase.CreateSmartPlaylist(ctx.Request.Context(), request.Name, userID, request.MinRating)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, playlist)
}

func (c *PlaylistController) Get(ctx *gin.Context) {
	playlist, err := c.PlaylistUsecase.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		HandleError(ctx, err)
		return
	}
	if playlist == nil {
		ErrorResponse(ctx, http.StatusNotFound, "NOT_FOUND", "歌单不存在")
		return
	}
	ctx.JSON(http.StatusOK, playlist)
}

// Visible 自己的歌单与他人的公开歌单
func (c *PlaylistController) Visible(ctx *gin.Context) {
	userID := ctx.GetString("x-user-id")
	playlists, err := c.PlaylistUsecase.VisibleTo(ctx.Request.Context(), userID)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	SuccessResponse(ctx, "playlists", playlists, len(playlists))
}

type addAlbumRequest struct {
	AlbumID string `json:"album_id" binding:"required"`
}

func (c *PlaylistController) AddAlbum(ctx *gin.Context) {
	var request addAlbumRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMS", err.Error())
		return
	}

	userID := ctx.GetString("x-user-id")
	added, err := c.PlaylistUsecase.AddAlbum(ctx.Request.Context(), userID, ctx.Param("id"), request.AlbumID)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"added": added})
}

func (c *PlaylistController) RemoveAlbum(ctx *gin.Context) {
	userID := ctx.GetString("x-user-id")
	removed, err := c.PlaylistUsecase.RemoveAlbum(ctx.Request.Context(), userID, ctx.Param("id"), ctx.Param("albumId"))
	if err != nil {
		HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"removed": removed})
}

type updatePlaylistRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

func (c *PlaylistController) UpdateInfo(ctx *gin.Context) {
	var request updatePlaylistRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMS", err.Error())
		return
	}

	userID := ctx.GetString("x-user-id")
	updated, err := c.PlaylistUsecase.UpdateInfo(ctx.Request.Context(), userID, ctx.Param("id"), request.Name, request.Description, request.IsPublic)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"updated": updated})
}

func (c *PlaylistController) Delete(ctx *gin.Context) {
	userID := ctx.GetString("x-user-id")
	deleted, err := c.PlaylistUsecase.Delete(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// Albums 用已有评分记录还原歌单内专辑信息
func (c *PlaylistController) Albums(ctx *gin.Context) {
	albums, err := c.PlaylistUsecase.AlbumsInPlaylist(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		HandleError(ctx, err)
		return
	}
	SuccessResponse(ctx, "albums", albums, len(albums))
}
