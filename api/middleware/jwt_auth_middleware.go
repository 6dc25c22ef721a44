package middleware

import (
	"net/http"
	"strings"

	"github.com/Super-Badmen-Viper/PitchPlease/internal/tokenutil"
	"github.com/gin-gonic/gin"
)

// JwtAuthMiddleware 校验Bearer令牌并注入用户身份
func JwtAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		t := strings.Split(authHeader, " ")
		if len(t) == 2 {
			authToken := t[1]
			authorized, _ := tokenutil.IsAuthorized(authToken, secret)
			if authorized {
				userID, err := tokenutil.ExtractIDFromToken(authToken, secret)
				if err != nil {
					c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"code": "UNAUTHORIZED", "message": err.Error()}})
					c.Abort()
					return
				}
				userName, _ := tokenutil.ExtractNameFromToken(authToken, secret)
				c.Set("x-user-id", userID)
				c.Set("x-user-name", userName)
				c.Next()
				return
			}
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"code": "UNAUTHORIZED", "message": "not authorized"}})
		c.Abort()
	}
}
