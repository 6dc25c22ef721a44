package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// FriendshipStatus 好友关系状态
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipBlocked  FriendshipStatus = "blocked"
)

// Friendship 好友关系，双向对称：无论哪一方是发起者都视为同一关系
type Friendship struct {
	ID                string           `bson:"id" json:"id"`
	UserID            string           `bson:"user_id" json:"user_id"` // 发起者
	FriendID          string           `bson:"friend_id" json:"friend_id"`
	FriendDisplayName string           `bson:"friend_display_name" json:"friend_display_name"`
	Status            FriendshipStatus `bson:"status" json:"status"`
	RequestedAt       time.Time        `bson:"requested_at" json:"requested_at"`
	AcceptedAt        *time.Time       `bson:"accepted_at,omitempty" json:"accepted_at,omitempty"`
}

// NewFriendship 创建待确认的好友请求
func NewFriendship(userID, friendID, friendDisplayName string) *Friendship {
	return &Friendship{
		ID:                uuid.NewString(),
		UserID:            userID,
		FriendID:          friendID,
		FriendDisplayName: friendDisplayName,
		Status:            FriendshipPending,
		RequestedAt:       time.Now().UTC(),
	}
}

// Involves 该关系是否涉及指定的一对用户（不分方向）
func (f *Friendship) Involves(a, b string) bool {
	return (f.UserID == a && f.FriendID == b) || (f.UserID == b && f.FriendID == a)
}

// RatingLike 评分点赞记录
type RatingLike struct {
	ID              string    `bson:"id" json:"id"`
	RatingID        string    `bson:"rating_id" json:"rating_id"`
	UserID          string    `bson:"user_id" json:"user_id"`
	UserDisplayName string    `bson:"user_display_name" json:"user_display_name"`
	LikedAt         time.Time `bson:"liked_at" json:"liked_at"`
}

func NewRatingLike(ratingID, userID, userDisplayName string) *RatingLike {
	return &RatingLike{
		ID:              uuid.NewString(),
		RatingID:        ratingID,
		UserID:          userID,
		UserDisplayName: userDisplayName,
		LikedAt:         time.Now().UTC(),
	}
}

// RatingComment 评分下的评论
type RatingComment struct {
	ID              string    `bson:"id" json:"id"`
	RatingID        string    `bson:"rating_id" json:"rating_id"`
	UserID          string    `bson:"user_id" json:"user_id"`
	UserDisplayName string    `bson:"user_display_name" json:"user_display_name"`
	Comment         string    `bson:"comment" json:"comment"`
	CommentedAt     time.Time `bson:"commented_at" json:"commented_at"`
}

func NewRatingComment(ratingID, userID, userDisplayName, comment string) *RatingComment {
	return &RatingComment{
		ID:              uuid.NewString(),
		RatingID:        ratingID,
		UserID:          userID,
		UserDisplayName: userDisplayName,
		Comment:         comment,
		CommentedAt:     time.Now().UTC(),
	}
}

// ActivityType 动态类型
type ActivityType string

const (
	ActivityNewRating       ActivityType = "new_rating"
	ActivityNewFriend       ActivityType = "new_friend"
	ActivityPlaylistCreated ActivityType = "playlist_created"
	ActivityHighRating      ActivityType = "high_rating" // 5星评分
)

// SocialActivity 动态流中的一条记录（追加写入，全局最多保留100条）
type SocialActivity struct {
	ID              string       `bson:"id" json:"id"`
	UserID          string       `bson:"user_id" json:"user_id"`
	UserDisplayName string       `bson:"user_display_name" json:"user_display_name"`
	ActivityType    ActivityType `bson:"activity_type" json:"activity_type"`
	AlbumID         string       `bson:"album_id,omitempty" json:"album_id,omitempty"`
	AlbumName       string       `bson:"album_name,omitempty" json:"album_name,omitempty"`
	ArtistName      string       `bson:"artist_name,omitempty" json:"artist_name,omitempty"`
	Rating          int          `bson:"rating,omitempty" json:"rating,omitempty"`
	Review          string       `bson:"review,omitempty" json:"review,omitempty"`
	ActivityDate    time.Time    `bson:"activity_date" json:"activity_date"`
}

func NewSocialActivity(userID, userDisplayName string, activityType ActivityType) *SocialActivity {
	return &SocialActivity{
		ID:              uuid.NewString(),
		UserID:          userID,
		UserDisplayName: userDisplayName,
		ActivityType:    activityType,
		ActivityDate:    time.Now().UTC(),
	}
}

// MaxStoredActivities 动态日志滚动上限，超出时丢弃最旧的
const MaxStoredActivities = 100

// SocialRepository 社交数据持久化接口
type SocialRepository interface {
	CreateFriendship(ctx context.Context, friendship *Friendship) error
	// FindFriendshipBetween 任一方向的现存关系，不存在返回 (nil, nil)
	FindFriendshipBetween(ctx context.Context, userID, otherID string) (*Friendship, error)
	// AcceptFriendship pending→accepted，仅被请求方可接受；
	// 目标不存在、已非pending或userID不是被请求方时返回 false
	AcceptFriendship(ctx context.Context, friendshipID, userID string) (bool, error)
	// DeleteFriendship 仅关系双方可删，其他人删除返回 false
	DeleteFriendship(ctx context.Context, friendshipID, userID string) (bool, error)
	FriendshipsOfUser(ctx context.Context, userID string) ([]Friendship, error)

	AddLike(ctx context.Context, like *RatingLike) error
	// RemoveLike 删除该用户对该评分的所有点赞
	RemoveLike(ctx context.Context, ratingID, userID string) (bool, error)
	LikesForRating(ctx context.Context, ratingID string) ([]RatingLike, error)
	HasUserLiked(ctx context.Context, ratingID, userID string) (bool, error)

	AddComment(ctx context.Context, comment *RatingComment) error
	// RemoveComment 仅作者本人可删，非作者删除返回 false
	RemoveComment(ctx context.Context, commentID, userID string) (bool, error)
	CommentsForRating(ctx context.Context, ratingID string) ([]RatingComment, error)

	// AddActivity 追加动态并执行100条滚动淘汰
	AddActivity(ctx context.Context, activity *SocialActivity) error
	// ActivitiesOfUsers 指定用户集合的动态，按时间降序
	ActivitiesOfUsers(ctx context.Context, userIDs []string) ([]SocialActivity, error)
}

// SocialUsecase 社交业务接口
type SocialUsecase interface {
	SendFriendRequest(ctx context.Context, userID, userDisplayName, friendID, friendDisplayName string) (bool, error)
	AcceptFriendRequest(ctx context.Context, friendshipID, userID string) (bool, error)
	DeclineFriendRequest(ctx context.Context, friendshipID, userID string) (bool, error)
	Friends(ctx context.Context, userID string) ([]Friendship, error)
	PendingRequests(ctx context.Context, userID string) ([]Friendship, error)
	SentRequests(ctx context.Context, userID string) ([]Friendship, error)
	AreFriends(ctx context.Context, userID, otherID string) (bool, error)

	LikeRating(ctx context.Context, ratingID, userID, userDisplayName string) (bool, error)
	UnlikeRating(ctx context.Context, ratingID, userID string) (bool, error)
	LikesForRating(ctx context.Context, ratingID string) ([]RatingLike, error)

	AddComment(ctx context.Context, ratingID, userID, userDisplayName, comment string) (bool, error)
	RemoveComment(ctx context.Context, commentID, userID string) (bool, error)
	CommentsForRating(ctx context.Context, ratingID string) ([]RatingComment, error)

	RecordActivity(ctx context.Context, activity *SocialActivity) error
	// ActivityFeed 本人 + 已接受好友（双向）的动态，按时间降序
	ActivityFeed(ctx context.Context, userID string) ([]SocialActivity, error)
}
