package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User 本地账户
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	DisplayName  string    `bson:"display_name" json:"display_name"`
	PasswordHash string    `bson:"password_hash" json:"password_hash"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// NewUser 创建新账户（密码须已哈希）
func NewUser(email, displayName, passwordHash string) *User {
	return &User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}

// PublicUser 对外暴露的用户信息（不含密码哈希）
type PublicUser struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName}
}

type SignupRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	DisplayName string `json:"display_name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken string     `json:"access_token"`
	User        PublicUser `json:"user"`
}

// UserRepository 账户持久化接口
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	// GetByEmail 邮箱匹配不区分大小写，不存在返回 (nil, nil)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, userID string) (*User, error)
	Fetch(ctx context.Context) ([]User, error)
}

// AuthUsecase 注册/登录业务接口
type AuthUsecase interface {
	Signup(ctx context.Context, request SignupRequest) (*AuthResponse, error)
	Login(ctx context.Context, request LoginRequest) (*AuthResponse, error)
	GetUserByID(ctx context.Context, userID string) (*User, error)
	ListUsers(ctx context.Context) ([]PublicUser, error)
}
