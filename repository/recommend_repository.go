package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/Super-Badmen-Viper/PitchPlease/mongo"
	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// recommendationDocument 每个用户一份缓存文档
type recommendationDocument struct {
	UserID          string                       `bson:"user_id"`
	Recommendations []domain.AlbumRecommendation `bson:"recommendations"`
	AnalyzedAt      time.Time                    `bson:"analyzed_at"`
}

type recommendRepository struct {
	db         mongo.Database
	collection string
}

// NewRecommendRepository MongoDB后端的推荐缓存仓库
func NewRecommendRepository(db mongo.Database, collection string) domain.RecommendationRepository {
	return &recommendRepository{
		db:         db,
		collection: collection,
	}
}

func (r *recommendRepository) Replace(ctx context.Context, userID string, recommendations []domain.AlbumRecommendation, analyzedAt time.Time) error {
	coll := r.db.Collection(r.collection)
	doc := recommendationDocument{
		UserID:          userID,
		Recommendations: recommendations,
		AnalyzedAt:      analyzedAt,
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := coll.ReplaceOne(ctx, bson.M{"user_id": userID}, doc, opts); err != nil {
		return fmt.Errorf("保存推荐缓存失败: %w", err)
	}
	return nil
}

func (r *recommendRepository) GetByUser(ctx context.Context, userID string) ([]domain.AlbumRecommendation, time.Time, error) {
	coll := r.db.Collection(r.collection)
	var doc recommendationDocument
	err := coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return []domain.AlbumRecommendation{}, time.Time{}, nil
		}
		return nil, time.Time{}, fmt.Errorf("查询推荐缓存失败: %w", err)
	}
	if doc.Recommendations == nil {
		doc.Recommendations = []domain.AlbumRecommendation{}
	}
	return doc.Recommendations, doc.AnalyzedAt, nil
}

func (r *recommendRepository) RemoveOne(ctx context.Context, userID, recommendationID string) (bool, error) {
	coll := r.db.Collection(r.collection)
	update := bson.M{
		"$pull": bson.M{"recommendations": bson.M{"id": recommendationID}},
	}
	res, err := coll.UpdateOne(ctx, bson.M{"user_id": userID}, update)
	if err != nil {
		return false, fmt.Errorf("移除推荐条目失败: %w", err)
	}
	return res.ModifiedCount > 0, nil
}
