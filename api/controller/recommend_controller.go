package controller

import (
	"net/http"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/gin-gonic/gin"
)

type RecommendController struct {
	RecommendUsecase domain.RecommendUsecase
}

func NewRecommendController(uc domain.RecommendUsecase) *RecommendController {
	return &RecommendController{RecommendUsecase: uc}
}

// Generate 重建画像并生成推荐，同一用户并发请求合并执行
func (c *RecommendController) Generate(ctx *gin.Context) {
	userID := ctx.GetString("x-user-id")
	recommendations, err := c.RecommendUsecase.GenerateRecommendations(ctx.Request.Context(), userID)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	SuccessResponse(ctx, "recommendations", recommendations, len(recommendations))
}

// Current 返回缓存中的推荐
func (c *RecommendController) Current(ctx *gin.Context) {
	userID := ctx.GetString("x-user-id")
	recommendations, err := c.RecommendUsecase.CurrentRecommendations(ctx.Request.Context(), userID)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	SuccessResponse(ctx, "recommendations", recommendations, len(recommendations))
}

// HasRecent 缓存是否在24小时内
func (c *RecommendController) HasRecent(ctx *gin.Context) {
	userID := ctx.GetString("x-user-id")
	recent, err := c.RecommendUsecase.HasRecentRecommendations(ctx.Request.Context(), userID)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"has_recent": recent})
}

// MarkSeen 标记单条推荐为已看过并从缓存移除
func (c *RecommendController) MarkSeen(ctx *gin.Context) {
	userID := ctx.GetString("x-user-id")
	removed, err := c.RecommendUsecase.MarkRecommendationSeen(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"removed": removed})
}

// Profile 重建并返回口味画像
func (c *RecommendController) Profile(ctx *gin.Context) {
	userID := ctx.GetString("x-user-id")
	profile, err := c.RecommendUsecase.BuildProfile(ctx.Request.Context(), userID)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, profile)
}
