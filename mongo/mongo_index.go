package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateIndexes 为各集合创建查询索引，已存在的索引静默跳过
func CreateIndexes(db Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Rating Collection
	ratingCollection := db.Collection(domain.CollectionRating)
	createIndex(ctx, ratingCollection, bson.D{{Key: "id", Value: 1}}, "rating_id")
	createIndex(ctx, ratingCollection, bson.D{{Key: "user_id", Value: 1}}, "user_id")
	createIndex(ctx, ratingCollection, bson.D{{Key: "album_id", Value: 1}}, "album_id")
	createIndex(ctx, ratingCollection, bson.D{{Key: "updated_at", Value: -1}}, "updated_at")
	// 复合索引优化
	createIndex(ctx, ratingCollection, bson.D{
		{Key: "user_id", Value: 1},
		{Key: "album_id", Value: 1}}, "user_album_compound")

	// Playlist Collection
	playlistCollection := db.Collection(domain.CollectionPlaylist)
	createIndex(ctx, playlistCollection, bson.D{{Key: "id", Value: 1}}, "playlist_id")
	createIndex(ctx, playlistCollection, bson.D{{Key: "user_id", Value: 1}}, "user_id")
	createIndex(ctx, playlistCollection, bson.D{{Key: "is_public", Value: 1}}, "is_public")

	// Friendship Collection
	friendshipCollection := db.Collection(domain.CollectionFriendship)
	createIndex(ctx, friendshipCollection, bson.D{{Key: "id", Value: 1}}, "friendship_id")
	createIndex(ctx, friendshipCollection, bson.D{{Key: "user_id", Value: 1}}, "user_id")
	createIndex(ctx, friendshipCollection, bson.D{{Key: "friend_id", Value: 1}}, "friend_id")

	// Like / Comment Collection
	likeCollection := db.Collection(domain.CollectionRatingLike)
	createIndex(ctx, likeCollection, bson.D{
		{Key: "rating_id", Value: 1},
		{Key: "user_id", Value: 1}}, "rating_user_compound")
	commentCollection := db.Collection(domain.CollectionRatingComment)
	createIndex(ctx, commentCollection, bson.D{{Key: "rating_id", Value: 1}}, "rating_id")

	// Activity Collection
	activityCollection := db.Collection(domain.CollectionSocialActivity)
	createIndex(ctx, activityCollection, bson.D{{Key: "user_id", Value: 1}}, "user_id")
	createIndex(ctx, activityCollection, bson.D{{Key: "activity_date", Value: -1}}, "activity_date")

	// User Collection
	userCollection := db.Collection(domain.CollectionUser)
	createIndex(ctx, userCollection, bson.D{{Key: "id", Value: 1}}, "user_id")
	createUniqueIndex(ctx, userCollection, bson.D{{Key: "email", Value: 1}}, "email_unique")
}

func createIndex(ctx context.Context, coll Collection, keys bson.D, name string) {
	model := mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetName(name),
	}
	if _, err := coll.Indexes().CreateOne(ctx, model); err != nil {
		if !strings.Contains(err.Error(), "already exists") {
			fmt.Printf("创建索引 %s 失败: %v\n", name, err)
		}
	}
}

func createUniqueIndex(ctx context.Context, coll Collection, keys bson.D, name string) {
	model := mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetName(name).SetUnique(true),
	}
	if _, err := coll.Indexes().CreateOne(ctx, model); err != nil {
		if !strings.Contains(err.Error(), "already exists") {
			fmt.Printf("创建索引 %s 失败: %v\n", name, err)
		}
	}
}
