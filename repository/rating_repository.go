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

type ratingRepository struct {
	db         mongo.Database
	collection string
}

// NewRatingRepository MongoDB后端的评分仓库
func NewRatingRepository(db mongo.Database, collection string) domain.RatingRepository {
	return &ratingRepository{
		db:         db,
		collection: collection,
	}
}

func (r *ratingRepository) Save(ctx context.Context, rating *domain.AlbumRating) error {
	coll := r.db.Collection(r.collection)
	if _, err := coll.InsertOne(ctx, rating); err != nil {
		return fmt.Errorf("保存评分失败: %w", err)
	}
	return nil
}

func (r *ratingRepository) Update(ctx context.Context, rating *domain.AlbumRating) error {
	coll := r.db.Collection(r.collection)
	update := bson.M{
		"$set": bson.M{
			"rating":     rating.Rating,
			"review":     rating.Review,
			"updated_at": time.Now().UTC(),
		},
	}
	res, err := coll.UpdateOne(ctx, bson.M{"id": rating.ID}, update)
	if err != nil {
		return fmt.Errorf("更新评分失败: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ratingRepository) Delete(ctx context.Context, ratingID string) error {
	coll := r.db.Collection(r.collection)
	if _, err := coll.DeleteMany(ctx, bson.M{"id": ratingID}); err != nil {
		return fmt.Errorf("删除评分失败: %w", err)
	}
	return nil
}

func (r *ratingRepository) findSorted(ctx context.Context, filter bson.M, limit int64) ([]domain.AlbumRating, error) {
	coll := r.db.Collection(r.collection)
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			fmt.Printf("error closing cursor: %v\n", err)
		}
	}()

	results := make([]domain.AlbumRating, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("解码错误: %w", err)
	}
	return results, nil
}

func (r *ratingRepository) GetByUser(ctx context.Context, userID string) ([]domain.AlbumRating, error) {
	return r.findSorted(ctx, bson.M{"user_id": userID}, 0)
}

func (r *ratingRepository) GetByAlbum(ctx context.Context, albumID string) ([]domain.AlbumRating, error) {
	return r.findSorted(ctx, bson.M{"album_id": albumID}, 0)
}

func (r *ratingRepository) GetAllPublic(ctx context.Context, limit int) ([]domain.AlbumRating, error) {
	if limit <= 0 {
		limit = 50
	}
	return r.findSorted(ctx, bson.M{}, int64(limit))
}

func (r *ratingRepository) HasUserRated(ctx context.Context, userID, albumID string) (*domain.AlbumRating, error) {
	coll := r.db.Collection(r.collection)
	var rating domain.AlbumRating
	err := coll.FindOne(ctx, bson.M{"user_id": userID, "album_id": albumID}).Decode(&rating)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询评分失败: %w", err)
	}
	return &rating, nil
}

func (r *ratingRepository) AverageRating(ctx context.Context, albumID string) (float64, error) {
	coll := r.db.Collection(r.collection)
	pipeline := []bson.D{
		{{Key: "$match", Value: bson.D{{Key: "album_id", Value: albumID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$album_id"},
			{Key: "average", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
		}}},
	}
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("聚合查询失败: %w", err)
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			fmt.Printf("error closing cursor: %v\n", err)
		}
	}()

	// 无评分时返回0，不返回NaN
	if !cursor.Next(ctx) {
		return 0, nil
	}
	var result struct {
		Average float64 `bson:"average"`
	}
	if err := cursor.Decode(&result); err != nil {
		return 0, fmt.Errorf("解码错误: %w", err)
	}
	return result.Average, nil
}
