package controller

import (
	"net/http"
	"strconv"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/gin-gonic/gin"
)

type RatingController struct {
	RatingUsecase domain.RatingUsecase
}

func NewRatingController(uc domain.RatingUsecase) *RatingController {
	return &RatingController{RatingUsecase: uc}
}

type submitRatingRequest struct {
	Album  domain.Album `json:"album" binding:"required"`
	Rating int          `json:"rating" binding:"required"`
	Review string       `json:"review"`
}

// SubmitRating 提交评分，已评过的专辑原地更新
func (c *RatingController) SubmitRating(ctx *gin.Context) {
	var request submitRatingRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMS", err.Error())
		return
	}

	userID := ctx.GetString("x-user-id")
	userName := ctx.GetString("x-user-name")
	rating, err := c.RatingUsecase.SubmitRating(ctx.Request.Context(), userID, userName, request.Album, request.Rating, request.Review)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, rating)
}

type updateRatingRequest struct {
	Rating int    `json:"rating" binding:"required"`
	Review string `json:"review"`
}

func (c *RatingController) UpdateRating(ctx *gin.Context) {
	var request updateRatingRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMS", err.Error())
		return
	}

	rating := &domain.AlbumRating{
		ID:     ctx.Param("id"),
		UserID: ctx.GetString("x-user-id"),
		Rating: request.Rating,
		Review: request.Review,
	}
	if err := c.RatingUsecase.UpdateRating(ctx.Request.Context(), ctx.GetString("x-user-id"), rating); err != nil {
		HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"updated": true})
}

func (c *RatingController) DeleteRating(ctx *gin.Context) {
	userID := ctx.GetString("x-user-id")
	if err := c.RatingUsecase.DeleteRating(ctx.Request.Context(), userID, ctx.Param("id")); err != nil {
		HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"deleted": true})
}

// MyRatings 当前用户的全部评分，按更新时间降序
func (c *RatingController) MyRatings(ctx *gin.Context) {
	userID := ctx.GetString("x-user-id")
	ratings, err := c.RatingUsecase.RatingsForUser(ctx.Request.Context(), userID)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	SuccessResponse(ctx, "ratings", ratings, len(ratings))
}

func (c *RatingController) AlbumRatings(ctx *gin.Context) {
	ratings, err := c.RatingUsecase.RatingsForAlbum(ctx.Request.Context(), ctx.Param("albumId"))
	if err != nil {
		HandleError(ctx, err)
		return
	}
	SuccessResponse(ctx, "ratings", ratings, len(ratings))
}

// PublicFeed 公共评分流，limit默认50
func (c *RatingController) PublicFeed(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMS", "limit必须为正整数")
		return
	}

	ratings, err := c.RatingUsecase.PublicFeed(ctx.Request.Context(), limit)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	SuccessResponse(ctx, "ratings", ratings, len(ratings))
}

func (c *RatingController) AlbumAverage(ctx *gin.Context) {
	average, err := c.RatingUsecase.AlbumAverage(ctx.Request.Context(), ctx.Param("albumId"))
	if err != nil {
		HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"album_id": ctx.Param("albumId"), "average_rating": average})
}

func (c *RatingController) MyStats(ctx *gin.Context) {
	userID := ctx.GetString("x-user-id")
	stats, err := c.RatingUsecase.UserStats(ctx.Request.Context(), userID)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}
