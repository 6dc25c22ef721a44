package controller

import (
	"net/http"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthUsecase domain.AuthUsecase
}

func NewAuthController(uc domain.AuthUsecase) *AuthController {
	return &AuthController{AuthUsecase: uc}
}

func (c *AuthController) Signup(ctx *gin.Context) {
	var request domain.SignupRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMS", err.Error())
		return
	}

	response, err := c.AuthUsecase.Signup(ctx.Request.Context(), request)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response)
}

func (c *AuthController) Login(ctx *gin.Context) {
	var request domain.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMS", err.Error())
		return
	}

	response, err := c.AuthUsecase.Login(ctx.Request.Context(), request)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response)
}

// Me 当前登录用户信息
func (c *AuthController) Me(ctx *gin.Context) {
	userID := ctx.GetString("x-user-id")
	user, err := c.AuthUsecase.GetUserByID(ctx.Request.Context(), userID)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	if user == nil {
		ErrorResponse(ctx, http.StatusNotFound, "NOT_FOUND", "账户不存在")
		return
	}
	ctx.JSON(http.StatusOK, user.Public())
}

// ListUsers 全部用户（好友搜索用）
func (c *AuthController) ListUsers(ctx *gin.Context) {
	users, err := c.AuthUsecase.ListUsers(ctx.Request.Context())
	if err != nil {
		HandleError(ctx, err)
		return
	}
	SuccessResponse(ctx, "users", users, len(users))
}
