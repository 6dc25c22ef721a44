package repository_local

import (
	"context"
	"sort"
	"time"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/Super-Badmen-Viper/PitchPlease/storage"
)

type socialRepository struct {
	store *storage.Store
}

// NewSocialRepository 本地存储的社交数据仓库
func NewSocialRepository(store *storage.Store) domain.SocialRepository {
	return &socialRepository{store: store}
}

// ============== 好友关系 ==============

func (r *socialRepository) CreateFriendship(ctx context.Context, friendship *domain.Friendship) error {
	return storage.UpdateCollection(r.store, domain.CollectionFriendship,
		func(items []domain.Friendship) ([]domain.Friendship, error) {
			return append(items, *friendship), nil
		})
}

func (r *socialRepository) FindFriendshipBetween(ctx context.Context, userID, otherID string) (*domain.Friendship, error) {
	items, err := storage.LoadCollection[domain.Friendship](r.store, domain.CollectionFriendship)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.Involves(userID, otherID) {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

func (r *socialRepository) AcceptFriendship(ctx context.Context, friendshipID, userID string) (bool, error) {
	accepted := false
	err := storage.UpdateCollection(r.store, domain.CollectionFriendship,
		func(items []domain.Friendship) ([]domain.Friendship, error) {
			for i := range items {
				// 仅被请求方可接受，且仅对pending生效
				if items[i].ID == friendshipID &&
					items[i].FriendID == userID &&
					items[i].Status == domain.FriendshipPending {
					now := time.Now().UTC()
					items[i].Status = domain.FriendshipAccepted
					items[i].AcceptedAt = &now
					accepted = true
					break
				}
			}
			return items, nil
		})
	return accepted, err
}

func (r *socialRepository) DeleteFriendship(ctx context.Context, friendshipID, userID string) (bool, error) {
	removed := false
	err := storage.UpdateCollection(r.store, domain.CollectionFriendship,
		func(items []domain.Friendship) ([]domain.Friendship, error) {
			kept := items[:0]
			for _, item := range items {
				// 仅关系双方可删
				if item.ID == friendshipID && (item.UserID == userID || item.FriendID == userID) {
					removed = true
					continue
				}
				kept = append(kept, item)
			}
			return kept, nil
		})
	return removed, err
}

func (r *socialRepository) FriendshipsOfUser(ctx context.Context, userID string) ([]domain.Friendship, error) {
	items, err := storage.LoadCollection[domain.Friendship](r.store, domain.CollectionFriendship)
	if err != nil {
		return nil, err
	}
	matched := make([]domain.Friendship, 0)
	for _, item := range items {
		if item.UserID == userID || item.FriendID == userID {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// ============== 点赞 ==============

func (r *socialRepository) AddLike(ctx context.Context, like *domain.RatingLike) error {
	return storage.UpdateCollection(r.store, domain.CollectionRatingLike,
		func(items []domain.RatingLike) ([]domain.RatingLike, error) {
			return append(items, *like), nil
		})
}

func (r *socialRepository) RemoveLike(ctx context.Context, ratingID, userID string) (bool, error) {
	removed := false
	err := storage.UpdateCollection(r.store, domain.CollectionRatingLike,
		func(items []domain.RatingLike) ([]domain.RatingLike, error) {
			kept := items[:0]
			for _, item := range items {
				if item.RatingID == ratingID && item.UserID == userID {
					removed = true
					continue
				}
				kept = append(kept, item)
			}
			return kept, nil
		})
	return removed, err
}

func (r *socialRepository) LikesForRating(ctx context.Context, ratingID string) ([]domain.RatingLike, error) {
	items, err := storage.LoadCollection[domain.RatingLike](r.store, domain.CollectionRatingLike)
	if err != nil {
		return nil, err
	}
	matched := make([]domain.RatingLike, 0)
	for _, item := range items {
		if item.RatingID == ratingID {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func (r *socialRepository) HasUserLiked(ctx context.Context, ratingID, userID string) (bool, error) {
	items, err := r.LikesForRating(ctx, ratingID)
	if err != nil {
		return false, err
	}
	for _, item := range items {
		if item.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// ============== 评论 ==============

func (r *socialRepository) AddComment(ctx context.Context, comment *domain.RatingComment) error {
	return storage.UpdateCollection(r.store, domain.CollectionRatingComment,
		func(items []domain.RatingComment) ([]domain.RatingComment, error) {
			return append(items, *comment), nil
		})
}

func (r *socialRepository) RemoveComment(ctx context.Context, commentID, userID string) (bool, error) {
	removed := false
	err := storage.UpdateCollection(r.store, domain.CollectionRatingComment,
		func(items []domain.RatingComment) ([]domain.RatingComment, error) {
			kept := items[:0]
			for _, item := range items {
				// 仅作者本人可删
				if item.ID == commentID && item.UserID == userID {
					removed = true
					continue
				}
				kept = append(kept, item)
			}
			return kept, nil
		})
	return removed, err
}

func (r *socialRepository) CommentsForRating(ctx context.Context, ratingID string) ([]domain.RatingComment, error) {
	items, err := storage.LoadCollection[domain.RatingComment](r.store, domain.CollectionRatingComment)
	if err != nil {
		return nil, err
	}
	matched := make([]domain.RatingComment, 0)
	for _, item := range items {
		if item.RatingID == ratingID {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// ============== 动态日志 ==============

func (r *socialRepository) AddActivity(ctx context.Context, activity *domain.SocialActivity) error {
	return storage.UpdateCollection(r.store, domain.CollectionSocialActivity,
		func(items []domain.SocialActivity) ([]domain.SocialActivity, error) {
			items = append(items, *activity)
			// 滚动上限：只保留最近的 MaxStoredActivities 条
			if len(items) > domain.MaxStoredActivities {
				items = items[len(items)-domain.MaxStoredActivities:]
			}
			return items, nil
		})
}

func (r *socialRepository) ActivitiesOfUsers(ctx context.Context, userIDs []string) ([]domain.SocialActivity, error) {
	items, err := storage.LoadCollection[domain.SocialActivity](r.store, domain.CollectionSocialActivity)
	if err != nil {
		return nil, err
	}
	idSet := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		idSet[id] = struct{}{}
	}
	matched := make([]domain.SocialActivity, 0)
	for _, item := range items {
		if _, ok := idSet[item.UserID]; ok {
			matched = append(matched, item)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].ActivityDate.After(matched[j].ActivityDate)
	})
	return matched, nil
}
