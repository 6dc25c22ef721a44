package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AlbumRating 用户对专辑的评分记录（1-5星，可附文字评论）
type AlbumRating struct {
	ID              string    `bson:"id" json:"id"`
	UserID          string    `bson:"user_id" json:"user_id"`
	UserDisplayName string    `bson:"user_display_name" json:"user_display_name"`
	AlbumID         string    `bson:"album_id" json:"album_id"`
	AlbumName       string    `bson:"album_name" json:"album_name"`
	ArtistName      string    `bson:"artist_name" json:"artist_name"`
	AlbumImageURL   string    `bson:"album_image_url,omitempty" json:"album_image_url,omitempty"`
	Rating          int       `bson:"rating" json:"rating"`
	Review          string    `bson:"review,omitempty" json:"review,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// NewAlbumRating 基于搜索结果创建新评分
func NewAlbumRating(userID, userDisplayName string, album Album, rating int, review string) *AlbumRating {
	now := time.Now().UTC()
	return &AlbumRating{
		ID:              uuid.NewString(),
		UserID:          userID,
		UserDisplayName: userDisplayName,
		AlbumID:         album.ID,
		AlbumName:       album.Name,
		ArtistName:      album.ArtistNames(),
		AlbumImageURL:   album.ImageURL(),
		Rating:          rating,
		Review:          review,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// IsValidRating 校验评分范围
func (r *AlbumRating) IsValidRating() bool {
	return r.Rating >= 1 && r.Rating <= 5
}

// UserRatingStats 单用户评分统计
type UserRatingStats struct {
	UserID        string  `json:"user_id"`
	RatingCount   int     `json:"rating_count"`
	AverageRating float64 `json:"average_rating"`
}

// RatingRepository 评分持久化接口
// 存储层不强制 (userId, albumId) 唯一，调用方需先查再写
type RatingRepository interface {
	Save(ctx context.Context, rating *AlbumRating) error
	// Update 按ID整体替换，目标不存在返回 ErrNotFound
	Update(ctx context.Context, rating *AlbumRating) error
	// Delete 目标不存在时静默成功
	Delete(ctx context.Context, ratingID string) error

	// 查询结果均按 updated_at 降序
	GetByUser(ctx context.Context, userID string) ([]AlbumRating, error)
	GetByAlbum(ctx context.Context, albumID string) ([]AlbumRating, error)
	GetAllPublic(ctx context.Context, limit int) ([]AlbumRating, error)

	// HasUserRated 返回该用户对该专辑的评分，没有则为 nil
	HasUserRated(ctx context.Context, userID, albumID string) (*AlbumRating, error)

	// AverageRating 专辑平均分，无评分时返回0（非NaN）
	AverageRating(ctx context.Context, albumID string) (float64, error)
}

// RatingUsecase 评分业务接口
type RatingUsecase interface {
	SubmitRating(ctx context.Context, userID, userDisplayName string, album Album, rating int, review string) (*AlbumRating, error)
	UpdateRating(ctx context.Context, userID string, rating *AlbumRating) error
	DeleteRating(ctx context.Context, userID, ratingID string) error
	RatingsForUser(ctx context.Context, userID string) ([]AlbumRating, error)
	RatingsForAlbum(ctx context.Context, albumID string) ([]AlbumRating, error)
	PublicFeed(ctx context.Context, limit int) ([]AlbumRating, error)
	AlbumAverage(ctx context.Context, albumID string) (float64, error)
	UserStats(ctx context.Context, userID string) (*UserRatingStats, error)
}
