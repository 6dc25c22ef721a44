package controller

import (
	"errors"
	"net/http"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/gin-gonic/gin"
)

// ErrorResponse 统一错误响应格式
func ErrorResponse(ctx *gin.Context, status int, code string, message string) {
	ctx.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// SuccessResponse 统一成功响应格式
func SuccessResponse(ctx *gin.Context, key string, data interface{}, count int) {
	ctx.JSON(http.StatusOK, gin.H{
		key:     data,
		"count": count,
	})
}

// HandleError 将领域错误映射为HTTP状态码
func HandleError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMS", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		ErrorResponse(ctx, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrDuplicate):
		ErrorResponse(ctx, http.StatusConflict, "ALREADY_EXISTS", err.Error())
	case errors.Is(err, domain.ErrAuthRequired):
		ErrorResponse(ctx, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	case errors.Is(err, domain.ErrExternalProvider):
		ErrorResponse(ctx, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
	default:
		ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
	}
}
