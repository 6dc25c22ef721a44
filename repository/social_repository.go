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

type socialRepository struct {
	db mongo.Database
}

// NewSocialRepository MongoDB后端的社交数据仓库
// 好友/点赞/评论/动态分属四个集合
func NewSocialRepository(db mongo.Database) domain.SocialRepository {
	return &socialRepository{db: db}
}

// ============== 好友关系 ==============

func (r *socialRepository) CreateFriendship(ctx context.Context, friendship *domain.Friendship) error {
	coll := r.db.Collection(domain.CollectionFriendship)
	if _, err := coll.InsertOne(ctx, friendship); err != nil {
		return fmt.Errorf("创建好友请求失败: %w", err)
	}
	return nil
}

func (r *socialRepository) FindFriendshipBetween(ctx context.Context, userID, otherID string) (*domain.Friendship, error) {
	coll := r.db.Collection(domain.CollectionFriendship)
	filter := bson.M{
		"$or": []bson.M{
			{"user_id": userID, "friend_id": otherID},
			{"user_id": otherID, "friend_id": userID},
		},
	}
	var friendship domain.Friendship
	err := coll.FindOne(ctx, filter).Decode(&friendship)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询好友关系失败: %w", err)
	}
	return &friendship, nil
}

func (r *socialRepository) AcceptFriendship(ctx context.Context, friendshipID, userID string) (bool, error) {
	coll := r.db.Collection(domain.CollectionFriendship)
	// 过滤条件含被请求方ID与pending状态，他人或已确认的关系不命中
	filter := bson.M{
		"id":        friendshipID,
		"friend_id": userID,
		"status":    domain.FriendshipPending,
	}
	update := bson.M{
		"$set": bson.M{
			"status":      domain.FriendshipAccepted,
			"accepted_at": time.Now().UTC(),
		},
	}
	res, err := coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("接受好友请求失败: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *socialRepository) DeleteFriendship(ctx context.Context, friendshipID, userID string) (bool, error) {
	coll := r.db.Collection(domain.CollectionFriendship)
	// 过滤条件含关系双方，非当事人删除不命中
	filter := bson.M{
		"id": friendshipID,
		"$or": []bson.M{
			{"user_id": userID},
			{"friend_id": userID},
		},
	}
	count, err := coll.DeleteMany(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("删除好友关系失败: %w", err)
	}
	return count > 0, nil
}

func (r *socialRepository) FriendshipsOfUser(ctx context.Context, userID string) ([]domain.Friendship, error) {
	coll := r.db.Collection(domain.CollectionFriendship)
	filter := bson.M{
		"$or": []bson.M{
			{"user_id": userID},
			{"friend_id": userID},
		},
	}
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			fmt.Printf("error closing cursor: %v\n", err)
		}
	}()

	results := make([]domain.Friendship, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("解码错误: %w", err)
	}
	return results, nil
}

// ============== 点赞 ==============

func (r *socialRepository) AddLike(ctx context.Context, like *domain.RatingLike) error {
	coll := r.db.Collection(domain.CollectionRatingLike)
	if _, err := coll.InsertOne(ctx, like); err != nil {
		return fmt.Errorf("点赞失败: %w", err)
	}
	return nil
}

func (r *socialRepository) RemoveLike(ctx context.Context, ratingID, userID string) (bool, error) {
	coll := r.db.Collection(domain.CollectionRatingLike)
	count, err := coll.DeleteMany(ctx, bson.M{"rating_id": ratingID, "user_id": userID})
	if err != nil {
		return false, fmt.Errorf("取消点赞失败: %w", err)
	}
	return count > 0, nil
}

func (r *socialRepository) LikesForRating(ctx context.Context, ratingID string) ([]domain.RatingLike, error) {
	coll := r.db.Collection(domain.CollectionRatingLike)
	cursor, err := coll.Find(ctx, bson.M{"rating_id": ratingID})
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			fmt.Printf("error closing cursor: %v\n", err)
		}
	}()

	results := make([]domain.RatingLike, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("解码错误: %w", err)
	}
	return results, nil
}

func (r *socialRepository) HasUserLiked(ctx context.Context, ratingID, userID string) (bool, error) {
	coll := r.db.Collection(domain.CollectionRatingLike)
	count, err := coll.CountDocuments(ctx, bson.M{"rating_id": ratingID, "user_id": userID})
	if err != nil {
		return false, fmt.Errorf("查询点赞失败: %w", err)
	}
	return count > 0, nil
}

// ============== 评论 ==============

func (r *socialRepository) AddComment(ctx context.Context, comment *domain.RatingComment) error {
	coll := r.db.Collection(domain.CollectionRatingComment)
	if _, err := coll.InsertOne(ctx, comment); err != nil {
		return fmt.Errorf("添加评论失败: %w", err)
	}
	return nil
}

func (r *socialRepository) RemoveComment(ctx context.Context, commentID, userID string) (bool, error) {
	coll := r.db.Collection(domain.CollectionRatingComment)
	// 过滤条件含作者ID，非作者删除不命中
	count, err := coll.DeleteMany(ctx, bson.M{"id": commentID, "user_id": userID})
	if err != nil {
		return false, fmt.Errorf("删除评论失败: %w", err)
	}
	return count > 0, nil
}

func (r *socialRepository) CommentsForRating(ctx context.Context, ratingID string) ([]domain.RatingComment, error) {
	coll := r.db.Collection(domain.CollectionRatingComment)
	opts := options.Find().SetSort(bson.D{{Key: "commented_at", Value: 1}})
	cursor, err := coll.Find(ctx, bson.M{"rating_id": ratingID}, opts)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			fmt.Printf("error closing cursor: %v\n", err)
		}
	}()

	results := make([]domain.RatingComment, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("解码错误: %w", err)
	}
	return results, nil
}

// ============== 动态日志 ==============

func (r *socialRepository) AddActivity(ctx context.Context, activity *domain.SocialActivity) error {
	coll := r.db.Collection(domain.CollectionSocialActivity)
	if _, err := coll.InsertOne(ctx, activity); err != nil {
		return fmt.Errorf("写入动态失败: %w", err)
	}

	// 滚动上限：超出时删除最旧的记录
	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("统计动态数量失败: %w", err)
	}
	if count <= domain.MaxStoredActivities {
		return nil
	}

	overflow := count - domain.MaxStoredActivities
	opts := options.Find().
		SetSort(bson.D{{Key: "activity_date", Value: 1}}).
		SetLimit(overflow)
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return fmt.Errorf("查询过期动态失败: %w", err)
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			fmt.Printf("error closing cursor: %v\n", err)
		}
	}()

	oldest := make([]domain.SocialActivity, 0, overflow)
	if err := cursor.All(ctx, &oldest); err != nil {
		return fmt.Errorf("解码错误: %w", err)
	}
	ids := make([]string, 0, len(oldest))
	for _, item := range oldest {
		ids = append(ids, item.ID)
	}
	if len(ids) > 0 {
		if _, err := coll.DeleteMany(ctx, bson.M{"id": bson.M{"$in": ids}}); err != nil {
			return fmt.Errorf("淘汰过期动态失败: %w", err)
		}
	}
	return nil
}

func (r *socialRepository) ActivitiesOfUsers(ctx context.Context, userIDs []string) ([]domain.SocialActivity, error) {
	coll := r.db.Collection(domain.CollectionSocialActivity)
	opts := options.Find().SetSort(bson.D{{Key: "activity_date", Value: -1}})
	cursor, err := coll.Find(ctx, bson.M{"user_id": bson.M{"$in": userIDs}}, opts)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			fmt.Printf("error closing cursor: %v\n", err)
		}
	}()

	results := make([]domain.SocialActivity, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("解码错误: %w", err)
	}
	return results, nil
}
