package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
)

type socialUsecase struct {
	socialRepository domain.SocialRepository
	contextTimeout   time.Duration
}

// NewSocialUsecase 创建社交业务实例
func NewSocialUsecase(socialRepository domain.SocialRepository, timeout time.Duration) domain.SocialUsecase {
	return &socialUsecase{
		socialRepository: socialRepository,
		contextTimeout:   timeout,
	}
}

// ============== 好友关系 ==============

// SendFriendRequest 发送好友请求
// 对自己发起、或两人之间任一方向已存在关系时不生效返回 false
func (uc *socialUsecase) SendFriendRequest(ctx context.Context, userID, userDisplayName, friendID, friendDisplayName string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	if userID == friendID {
		return false, nil
	}
	existing, err := uc.socialRepository.FindFriendshipBetween(ctx, userID, friendID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	friendship := domain.NewFriendship(userID, friendID, friendDisplayName)
	if err := uc.socialRepository.CreateFriendship(ctx, friendship); err != nil {
		return false, err
	}
	return true, nil
}

// AcceptFriendRequest 仅被请求方可接受待确认的请求，其他人操作不生效返回 false
func (uc *socialUsecase) AcceptFriendRequest(ctx context.Context, friendshipID, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	return uc.socialRepository.AcceptFriendship(ctx, friendshipID, userID)
}

// DeclineFriendRequest 拒绝即删除，重新发起不受影响
// 关系双方均可删（被请求方拒绝、发起方撤回），其他人操作不生效返回 false
func (uc *socialUsecase) DeclineFriendRequest(ctx context.Context, friendshipID, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	return uc.socialRepository.DeleteFriendship(ctx, friendshipID, userID)
}

func (uc *socialUsecase) Friends(ctx context.Context, userID string) ([]domain.Friendship, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	friendships, err := uc.socialRepository.FriendshipsOfUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	accepted := make([]domain.Friendship, 0, len(friendships))
	for _, friendship := range friendships {
		if friendship.Status == domain.FriendshipAccepted {
			accepted = append(accepted, friendship)
		}
	}
	return accepted, nil
}

// PendingRequests 收到的待确认请求（自己是被请求方）
func (uc *socialUsecase) PendingRequests(ctx context.Context, userID string) ([]domain.Friendship, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	friendships, err := uc.socialRepository.FriendshipsOfUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	pending := make([]domain.Friendship, 0)
	for _, friendship := range friendships {
		if friendship.Status == domain.FriendshipPending && friendship.FriendID == userID {
			pending = append(pending, friendship)
		}
	}
	return pending, nil
}

// SentRequests 发出的待确认请求（自己是发起方）
func (uc *socialUsecase) SentRequests(ctx context.Context, userID string) ([]domain.Friendship, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	friendships, err := uc.socialRepository.FriendshipsOfUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sent := make([]domain.Friendship, 0)
	for _, friendship := range friendships {
		if friendship.Status == domain.FriendshipPending && friendship.UserID == userID {
			sent = append(sent, friendship)
		}
	}
	return sent, nil
}

func (uc *socialUsecase) AreFriends(ctx context.Context, userID, otherID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	friendship, err := uc.socialRepository.FindFriendshipBetween(ctx, userID, otherID)
	if err != nil {
		return false, err
	}
	return friendship != nil && friendship.Status == domain.FriendshipAccepted, nil
}

// ============== 点赞 ==============

// LikeRating 点赞，重复点赞不生效返回 false
func (uc *socialUsecase) LikeRating(ctx context.Context, ratingID, userID, userDisplayName string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	liked, err := uc.socialRepository.HasUserLiked(ctx, ratingID, userID)
	if err != nil {
		return false, err
	}
	if liked {
		return false, nil
	}
	like := domain.NewRatingLike(ratingID, userID, userDisplayName)
	if err := uc.socialRepository.AddLike(ctx, like); err != nil {
		return false, err
	}
	return true, nil
}

func (uc *socialUsecase) UnlikeRating(ctx context.Context, ratingID, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	return uc.socialRepository.RemoveLike(ctx, ratingID, userID)
}

func (uc *socialUsecase) LikesForRating(ctx context.Context, ratingID string) ([]domain.RatingLike, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	return uc.socialRepository.LikesForRating(ctx, ratingID)
}

// ============== 评论 ==============

func (uc *socialUsecase) AddComment(ctx context.Context, ratingID, userID, userDisplayName, comment string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	if strings.TrimSpace(comment) == "" {
		return false, fmt.Errorf("%w: 评论内容不能为空", domain.ErrValidation)
	}
	record := domain.NewRatingComment(ratingID, userID, userDisplayName, comment)
	if err := uc.socialRepository.AddComment(ctx, record); err != nil {
		return false, err
	}
	return true, nil
}

func (uc *socialUsecase) RemoveComment(ctx context.Context, commentID, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	return uc.socialRepository.RemoveComment(ctx, commentID, userID)
}

func (uc *socialUsecase) CommentsForRating(ctx context.Context, ratingID string) ([]domain.RatingComment, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	return uc.socialRepository.CommentsForRating(ctx, ratingID)
}

// ============== 动态流 ==============

func (uc *socialUsecase) RecordActivity(ctx context.Context, activity *domain.SocialActivity) error {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	return uc.socialRepository.AddActivity(ctx, activity)
}

// ActivityFeed 本人与已接受好友（双向）的动态，按时间降序
func (uc *socialUsecase) ActivityFeed(ctx context.Context, userID string) ([]domain.SocialActivity, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	friendships, err := uc.socialRepository.FriendshipsOfUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	userIDs := []string{userID}
	for _, friendship := range friendships {
		if friendship.Status != domain.FriendshipAccepted {
			continue
		}
		if friendship.UserID == userID {
			userIDs = append(userIDs, friendship.FriendID)
		} else {
			userIDs = append(userIDs, friendship.UserID)
		}
	}
	return uc.socialRepository.ActivitiesOfUsers(ctx, userIDs)
}
