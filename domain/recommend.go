package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AlbumRecommendation 推荐结果（按用户缓存，得分含随机扰动，跨轮次不保证单调）
type AlbumRecommendation struct {
	ID        string    `bson:"id" json:"id"`
	Album     Album     `bson:"album" json:"album"`
	Score     float64   `bson:"score" json:"score"` // 约在[0,1]
	Reason    string    `bson:"reason" json:"reason"`
	Tags      []string  `bson:"tags" json:"tags"`
	SimilarTo string    `bson:"similar_to,omitempty" json:"similar_to,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// NewAlbumRecommendation 创建推荐条目
func NewAlbumRecommendation(album Album, score float64, reason string, tags []string, similarTo string) *AlbumRecommendation {
	return &AlbumRecommendation{
		ID:        uuid.NewString(),
		Album:     album,
		Score:     score,
		Reason:    reason,
		Tags:      tags,
		SimilarTo: similarTo,
		CreatedAt: time.Now().UTC(),
	}
}

// RecommendationRepository 推荐缓存持久化接口
type RecommendationRepository interface {
	// Replace 整体覆盖该用户的推荐缓存并记录分析时间
	Replace(ctx context.Context, userID string, recommendations []AlbumRecommendation, analyzedAt time.Time) error
	// GetByUser 返回缓存与分析时间，无缓存时返回空切片与零值时间
	GetByUser(ctx context.Context, userID string) ([]AlbumRecommendation, time.Time, error)
	// RemoveOne 移除单条（用户标记已看过/忽略）
	RemoveOne(ctx context.Context, userID, recommendationID string) (bool, error)
}

// RecommendUsecase 推荐业务接口
type RecommendUsecase interface {
	// GenerateRecommendations 重建画像并执行三种策略，同一用户并发调用会合并为一次执行
	GenerateRecommendations(ctx context.Context, userID string) ([]AlbumRecommendation, error)
	CurrentRecommendations(ctx context.Context, userID string) ([]AlbumRecommendation, error)
	// HasRecentRecommendations 缓存非空且分析时间在24小时内
	HasRecentRecommendations(ctx context.Context, userID string) (bool, error)
	MarkRecommendationSeen(ctx context.Context, userID, recommendationID string) (bool, error)
	// BuildProfile 从评分历史整体重建口味画像
	BuildProfile(ctx context.Context, userID string) (*UserMusicProfile, error)
}
