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

type playlistRepository struct {
	db         mongo.Database
	collection string
}

// NewPlaylistRepository MongoDB后端的歌单仓库
func NewPlaylistRepository(db mongo.Database, collection string) domain.PlaylistRepository {
	return &playlistRepository{
		db:         db,
		collection: collection,
	}
}

func (r *playlistRepository) Create(ctx context.Context, playlist *domain.Playlist) error {
	coll := r.db.Collection(r.collection)
	if _, err := coll.InsertOne(ctx, playlist); err != nil {
		return fmt.Errorf("创建歌单失败: %w", err)
	}
	return nil
}

func (r *playlistRepository) GetByID(ctx context.Context, playlistID string) (*domain.Playlist, error) {
	coll := r.db.Collection(r.collection)
	var playlist domain.Playlist
	err := coll.FindOne(ctx, bson.M{"id": playlistID}).Decode(&playlist)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询歌单失败: %w", err)
	}
	return &playlist, nil
}

func (r *playlistRepository) find(ctx context.Context, filter interface{}) ([]domain.Playlist, error) {
	coll := r.db.Collection(r.collection)
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			fmt.Printf("error closing cursor: %v\n", err)
		}
	}()

	results := make([]domain.Playlist, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("解码错误: %w", err)
	}
	return results, nil
}

func (r *playlistRepository) GetByUser(ctx context.Context, userID string) ([]domain.Playlist, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *playlistRepository) VisibleTo(ctx context.Context, userID string) ([]domain.Playlist, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"user_id": userID},
			{"is_public": true},
		},
	}
	return r.find(ctx, filter)
}

func (r *playlistRepository) AddAlbum(ctx context.Context, playlistID, albumID string) (bool, error) {
	coll := r.db.Collection(r.collection)
	// $ne 保证幂等：专辑已存在时不会重复追加
	filter := bson.M{"id": playlistID, "album_ids": bson.M{"$ne": albumID}}
	update := bson.M{
		"$push": bson.M{"album_ids": albumID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("添加专辑失败: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

func (r *playlistRepository) RemoveAlbum(ctx context.Context, playlistID, albumID string) (bool, error) {
	coll := r.db.Collection(r.collection)
	update := bson.M{
		// $pull 移除所有匹配项，对重复数据同样防御有效
		"$pull": bson.M{"album_ids": albumID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := coll.UpdateOne(ctx, bson.M{"id": playlistID}, update)
	if err != nil {
		return false, fmt.Errorf("移除专辑失败: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *playlistRepository) UpdateInfo(ctx context.Context, playlistID, name, description string, isPublic bool) (bool, error) {
	coll := r.db.Collection(r.collection)
	update := bson.M{
		"$set": bson.M{
			"name":        name,
			"description": description,
			"is_public":   isPublic,
			"updated_at":  time.Now().UTC(),
		},
	}
	res, err := coll.UpdateOne(ctx, bson.M{"id": playlistID}, update)
	if err != nil {
		return false, fmt.Errorf("更新歌单失败: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *playlistRepository) ReplaceAlbums(ctx context.Context, playlistID string, albumIDs []string) (bool, error) {
	coll := r.db.Collection(r.collection)
	update := bson.M{
		"$set": bson.M{
			"album_ids":  albumIDs,
			"updated_at": time.Now().UTC(),
		},
	}
	res, err := coll.UpdateOne(ctx, bson.M{"id": playlistID}, update)
	if err != nil {
		return false, fmt.Errorf("覆盖歌单成员失败: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *playlistRepository) Delete(ctx context.Context, playlistID string) (bool, error) {
	coll := r.db.Collection(r.collection)
	count, err := coll.DeleteMany(ctx, bson.M{"id": playlistID})
	if err != nil {
		return false, fmt.Errorf("删除歌单失败: %w", err)
	}
	return count > 0, nil
}
