package repository_local

import (
	"context"
	"sort"
	"time"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/Super-Badmen-Viper/PitchPlease/storage"
)

type ratingRepository struct {
	store *storage.Store
}

// NewRatingRepository 本地存储的评分仓库
func NewRatingRepository(store *storage.Store) domain.RatingRepository {
	return &ratingRepository{store: store}
}

func (r *ratingRepository) Save(ctx context.Context, rating *domain.AlbumRating) error {
	return storage.UpdateCollection(r.store, domain.CollectionRating,
		func(items []domain.AlbumRating) ([]domain.AlbumRating, error) {
			return append(items, *rating), nil
		})
}

func (r *ratingRepository) Update(ctx context.Context, rating *domain.AlbumRating) error {
	return storage.UpdateCollection(r.store, domain.CollectionRating,
		func(items []domain.AlbumRating) ([]domain.AlbumRating, error) {
			for i := range items {
				if items[i].ID == rating.ID {
					updated := *rating
					updated.UpdatedAt = time.Now().UTC()
					items[i] = updated
					return items, nil
				}
			}
			return nil, domain.ErrNotFound
		})
}

func (r *ratingRepository) Delete(ctx context.Context, ratingID string) error {
	return storage.UpdateCollection(r.store, domain.CollectionRating,
		func(items []domain.AlbumRating) ([]domain.AlbumRating, error) {
			kept := items[:0]
			for _, item := range items {
				if item.ID != ratingID {
					kept = append(kept, item)
				}
			}
			return kept, nil
		})
}

func (r *ratingRepository) GetByUser(ctx context.Context, userID string) ([]domain.AlbumRating, error) {
	items, err := storage.LoadCollection[domain.AlbumRating](r.store, domain.CollectionRating)
	if err != nil {
		return nil, err
	}
	matched := make([]domain.AlbumRating, 0)
	for _, item := range items {
		if item.UserID == userID {
			matched = append(matched, item)
		}
	}
	sortByUpdatedAtDesc(matched)
	return matched, nil
}

func (r *ratingRepository) GetByAlbum(ctx context.Context, albumID string) ([]domain.AlbumRating, error) {
	items, err := storage.LoadCollection[domain.AlbumRating](r.store, domain.CollectionRating)
	if err != nil {
		return nil, err
	}
	matched := make([]domain.AlbumRating, 0)
	for _, item := range items {
		if item.AlbumID == albumID {
			matched = append(matched, item)
		}
	}
	sortByUpdatedAtDesc(matched)
	return matched, nil
}

func (r *ratingRepository) GetAllPublic(ctx context.Context, limit int) ([]domain.AlbumRating, error) {
	items, err := storage.LoadCollection[domain.AlbumRating](r.store, domain.CollectionRating)
	if err != nil {
		return nil, err
	}
	sortByUpdatedAtDesc(items)
	if limit <= 0 {
		limit = 50
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *ratingRepository) HasUserRated(ctx context.Context, userID, albumID string) (*domain.AlbumRating, error) {
	items, err := storage.LoadCollection[domain.AlbumRating](r.store, domain.CollectionRating)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.UserID == userID && item.AlbumID == albumID {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

func (r *ratingRepository) AverageRating(ctx context.Context, albumID string) (float64, error) {
	items, err := r.GetByAlbum(ctx, albumID)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}
	total := 0
	for _, item := range items {
		total += item.Rating
	}
	return float64(total) / float64(len(items)), nil
}

func sortByUpdatedAtDesc(items []domain.AlbumRating) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})
}
