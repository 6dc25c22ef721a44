package domain

import (
	"github.com/golang-jwt/jwt/v4"
)

// JwtCustomClaims 访问令牌的自定义声明
type JwtCustomClaims struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	jwt.RegisteredClaims
}
