package repository_local

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/Super-Badmen-Viper/PitchPlease/storage"
)

type profileRepository struct {
	store *storage.Store
}

// NewProfileRepository 本地存储的口味画像仓库，按用户一键一档
func NewProfileRepository(store *storage.Store) domain.ProfileRepository {
	return &profileRepository{store: store}
}

func (r *profileRepository) Save(ctx context.Context, profile *domain.UserMusicProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	key := domain.UserScopedKey(domain.CollectionUserProfilePrefix, profile.UserID)
	return r.store.Set(key, data)
}

func (r *profileRepository) GetByUser(ctx context.Context, userID string) (*domain.UserMusicProfile, error) {
	key := domain.UserScopedKey(domain.CollectionUserProfilePrefix, userID)
	data, err := r.store.Get(key)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var profile domain.UserMusicProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &profile, nil
}
