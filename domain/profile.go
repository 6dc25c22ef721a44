package domain

import (
	"context"
	"time"
)

// UserMusicProfile 用户音乐口味画像
// 每次推荐刷新时从该用户当前全部评分整体重建，整体覆盖旧画像，不做增量合并
type UserMusicProfile struct {
	UserID               string                `bson:"user_id" json:"user_id"`
	FavoriteGenres       map[string]float64    `bson:"favorite_genres" json:"favorite_genres"` // 流派→权重，按最大值归一化到[0,1]
	FavoriteArtists      map[string]int        `bson:"favorite_artists" json:"favorite_artists"`
	AverageRatingByGenre map[string]float64    `bson:"average_rating_by_genre" json:"average_rating_by_genre"`
	RatingHistory        []RatingAnalysis      `bson:"rating_history" json:"rating_history"`
	DiscoveryPreferences DiscoveryPreferences  `bson:"discovery_preferences" json:"discovery_preferences"`
	LastUpdated          time.Time             `bson:"last_updated" json:"last_updated"`
}

// NewUserMusicProfile 创建空画像
func NewUserMusicProfile(userID string) *UserMusicProfile {
	return &UserMusicProfile{
		UserID:               userID,
		FavoriteGenres:       map[string]float64{},
		FavoriteArtists:      map[string]int{},
		AverageRatingByGenre: map[string]float64{},
		RatingHistory:        []RatingAnalysis{},
		DiscoveryPreferences: DefaultDiscoveryPreferences(),
		LastUpdated:          time.Now().UTC(),
	}
}

// DiscoveryPreferences 发现偏好
type DiscoveryPreferences struct {
	PreferPopular    bool     `bson:"prefer_popular" json:"prefer_popular"`
	PreferNew        bool     `bson:"prefer_new" json:"prefer_new"`
	PreferSimilar    bool     `bson:"prefer_similar" json:"prefer_similar"`
	Adventurousness  float64  `bson:"adventurousness" json:"adventurousness"` // 0.0保守 - 1.0激进
	ExcludeGenres    []string `bson:"exclude_genres" json:"exclude_genres"`
	PreferredDecades []string `bson:"preferred_decades" json:"preferred_decades"`
}

func DefaultDiscoveryPreferences() DiscoveryPreferences {
	return DiscoveryPreferences{
		PreferPopular:   true,
		PreferNew:       true,
		PreferSimilar:   true,
		Adventurousness: 0.5,
	}
}

// RatingAnalysis 单条评分的流派/年份标注
type RatingAnalysis struct {
	AlbumID     string    `bson:"album_id" json:"album_id"`
	Rating      int       `bson:"rating" json:"rating"`
	Genres      []string  `bson:"genres" json:"genres"`
	Artist      string    `bson:"artist" json:"artist"`
	ReleaseYear int       `bson:"release_year,omitempty" json:"release_year,omitempty"`
	RatedAt     time.Time `bson:"rated_at" json:"rated_at"`
	Confidence  float64   `bson:"confidence" json:"confidence"` // 流派归类的置信度
}

// ProfileRepository 画像持久化接口
type ProfileRepository interface {
	// Save 整体覆盖该用户的旧画像
	Save(ctx context.Context, profile *UserMusicProfile) error
	// GetByUser 不存在返回 (nil, nil)
	GetByUser(ctx context.Context, userID string) (*UserMusicProfile, error)
}
