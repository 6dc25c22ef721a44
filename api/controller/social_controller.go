package controller

import (
	"net/http"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/gin-gonic/gin"
)

type SocialController struct {
	SocialUsecase domain.SocialUsecase
}

func NewSocialController(uc domain.SocialUsecase) *SocialController {
	return &SocialController{SocialUsecase: uc}
}

// ============== 好友关系 ==============

type friendRequestBody struct {
	FriendID          string `json:"friend_id" binding:"required"`
	FriendDisplayName string `json:"friend_display_name" binding:"required"`
}

func (c *SocialController) SendFriendRequest(ctx *gin.Context) {
	var request friendRequestBody
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMS", err.Error())
		return
	}

	userID := ctx.GetString("x-user-id")
	userName := ctx.GetString("x-user-name")
	sent, err := c.SocialUsecase.SendFriendRequest(ctx.Request.Context(), userID, userName, request.FriendID, request.FriendDisplayName)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"sent": sent})
}

// AcceptFriendRequest 仅被请求方可接受
func (c *SocialController) AcceptFriendRequest(ctx *gin.Context) {
	userID := ctx.GetString("x-user-id")
	accepted, err := c.SocialUsecase.AcceptFriendRequest(ctx.Request.Context(), ctx.Param("id"), userID)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"accepted": accepted})
}

// DeclineFriendRequest 关系双方可拒绝或撤回
func (c *SocialController) DeclineFriendRequest(ctx *gin.Context) {
	userID := ctx.GetString("x-user-id")
	declined, err := c.SocialUsecase.DeclineFriendRequest(ctx.Request.Context(), ctx.Param("id"), userID)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"declined": declined})
}

func (c *SocialController) Friends(ctx *gin.Context) {
	userID := ctx.GetString("x-user-id")
	friends, err := c.SocialUsecase.Friends(ctx.Request.Context(), userID)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	SuccessResponse(ctx, "friends", friends, len(friends))
}

func (c *SocialController) PendingRequests(ctx *gin.Context) {
	userID := ctx.GetString("x-user-id")
	requests, err := c.SocialUsecase.PendingRequests(ctx.Request.Context(), userID)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	SuccessResponse(ctx, "requests", requests, len(requests))
}

func (c *SocialController) SentRequests(ctx *gin.Context) {
	userID := ctx.GetString("x-user-id")
	requests, err := c.SocialUsecase.SentRequests(ctx.Request.Context(), userID)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	SuccessResponse(ctx, "requests", requests, len(requests))
}

// ============== 点赞 ==============

func (c *SocialController) LikeRating(ctx *gin.Context) {
	userID := ctx.GetString("x-user-id")
	userName := ctx.GetString("x-user-name")
	liked, err := c.SocialUsecase.LikeRating(ctx.Request.Context(), ctx.Param("id"), userID, userName)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"liked": liked})
}

func (c *SocialController) UnlikeRating(ctx *gin.Context) {
	userID := ctx.GetString("x-user-id")
	unliked, err := c.SocialUsecase.UnlikeRating(ctx.Request.Context(), ctx.Param("id"), userID)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"unliked": unliked})
}

func (c *SocialController) Likes(ctx *gin.Context) {
	likes, err := c.SocialUsecase.LikesForRating(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		HandleError(ctx, err)
		return
	}
	SuccessResponse(ctx, "likes", likes, len(likes))
}

// ============== 评论 ==============

type addCommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

func (c *SocialController) AddComment(ctx *gin.Context) {
	var request addCommentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMS", err.Error())
		return
	}

	userID := ctx.GetString("x-user-id")
	userName := ctx.GetString("x-user-name")
	added, err := c.SocialUsecase.AddComment(ctx.Request.Context(), ctx.Param("id"), userID, userName, request.Comment)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"added": added})
}

// RemoveComment 仅评论作者可删
func (c *SocialController) RemoveComment(ctx *gin.Context) {
	userID := ctx.GetString("x-user-id")
	removed, err := c.SocialUsecase.RemoveComment(ctx.Request.Context(), ctx.Param("id"), userID)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (c *SocialController) Comments(ctx *gin.Context) {
	comments, err := c.SocialUsecase.CommentsForRating(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		HandleError(ctx, err)
		return
	}
	SuccessResponse(ctx, "comments", comments, len(comments))
}

// ============== 动态流 ==============

// ActivityFeed 本人与好友的动态
func (c *SocialController) ActivityFeed(ctx *gin.Context) {
	userID := ctx.GetString("x-user-id")
	activities, err := c.SocialUsecase.ActivityFeed(ctx.Request.Context(), userID)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	SuccessResponse(ctx, "activities", activities, len(activities))
}
