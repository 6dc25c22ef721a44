package repository_local

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/Super-Badmen-Viper/PitchPlease/storage"
)

// recommendationCache 单用户推荐缓存的存储形态
type recommendationCache struct {
	Recommendations []domain.AlbumRecommendation `json:"recommendations"`
	AnalyzedAt      time.Time                    `json:"analyzed_at"`
}

type recommendRepository struct {
	store *storage.Store
}

// NewRecommendRepository 本地存储的推荐缓存仓库，按用户一键一档
func NewRecommendRepository(store *storage.Store) domain.RecommendationRepository {
	return &recommendRepository{store: store}
}

func (r *recommendRepository) key(userID string) string {
	return domain.UserScopedKey(domain.CollectionRecommendationPrefix, userID)
}

func (r *recommendRepository) Replace(ctx context.Context, userID string, recommendations []domain.AlbumRecommendation, analyzedAt time.Time) error {
	cache := recommendationCache{
		Recommendations: recommendations,
		AnalyzedAt:      analyzedAt,
	}
	data, err := json.Marshal(cache)
	if err != nil {
		return fmt.Errorf("encode recommendations: %w", err)
	}
	return r.store.Set(r.key(userID), data)
}

func (r *recommendRepository) GetByUser(ctx context.Context, userID string) ([]domain.AlbumRecommendation, time.Time, error) {
	data, err := r.store.Get(r.key(userID))
	if err != nil {
		return nil, time.Time{}, err
	}
	if data == nil {
		return []domain.AlbumRecommendation{}, time.Time{}, nil
	}
	var cache recommendationCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, time.Time{}, fmt.Errorf("decode recommendations: %w", err)
	}
	if cache.Recommendations == nil {
		cache.Recommendations = []domain.AlbumRecommendation{}
	}
	return cache.Recommendations, cache.AnalyzedAt, nil
}

func (r *recommendRepository) RemoveOne(ctx context.Context, userID, recommendationID string) (bool, error) {
	recommendations, analyzedAt, err := r.GetByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	kept := recommendations[:0]
	removed := false
	for _, rec := range recommendations {
		if rec.ID == recommendationID {
			removed = true
			continue
		}
		kept = append(kept, rec)
	}
	if !removed {
		return false, nil
	}
	return true, r.Replace(ctx, userID, kept, analyzedAt)
}
