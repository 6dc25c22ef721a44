package repository_local

import (
	"context"
	"strings"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/Super-Badmen-Viper/PitchPlease/storage"
)

type userRepository struct {
	store *storage.Store
}

// NewUserRepository 本地存储的账户仓库
func NewUserRepository(store *storage.Store) domain.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return storage.UpdateCollection(r.store, domain.CollectionUser,
		func(items []domain.User) ([]domain.User, error) {
			for _, item := range items {
				if strings.EqualFold(item.Email, user.Email) {
					return nil, domain.ErrDuplicate
				}
			}
			return append(items, *user), nil
		})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	items, err := storage.LoadCollection[domain.User](r.store, domain.CollectionUser)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if strings.EqualFold(item.Email, email) {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

func (r *userRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	items, err := storage.LoadCollection[domain.User](r.store, domain.CollectionUser)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ID == userID {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

func (r *userRepository) Fetch(ctx context.Context) ([]domain.User, error) {
	return storage.LoadCollection[domain.User](r.store, domain.CollectionUser)
}
