package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/Super-Badmen-Viper/PitchPlease/mongo"
	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type profileRepository struct {
	db         mongo.Database
	collection string
}

// NewProfileRepository MongoDB后端的口味画像仓库，按 user_id 一人一档
func NewProfileRepository(db mongo.Database, collection string) domain.ProfileRepository {
	return &profileRepository{
		db:         db,
		collection: collection,
	}
}

func (r *profileRepository) Save(ctx context.Context, profile *domain.UserMusicProfile) error {
	coll := r.db.Collection(r.collection)
	// 整体覆盖旧画像，不存在则插入
	opts := options.Replace().SetUpsert(true)
	if _, err := coll.ReplaceOne(ctx, bson.M{"user_id": profile.UserID}, profile, opts); err != nil {
		return fmt.Errorf("保存画像失败: %w", err)
	}
	return nil
}

func (r *profileRepository) GetByUser(ctx context.Context, userID string) (*domain.UserMusicProfile, error) {
	coll := r.db.Collection(r.collection)
	var profile domain.UserMusicProfile
	err := coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询画像失败: %w", err)
	}
	return &profile, nil
}
