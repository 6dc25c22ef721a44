package repository_local

import (
	"context"
	"testing"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateAndGet(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	user := domain.NewUser("alice@example.com", "Alice", "hash")
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Alice", found.DisplayName)

	missing, err := repo.GetByID(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserDuplicateEmailCaseInsensitive(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, domain.NewUser("alice@example.com", "Alice", "hash")))

	err := repo.Create(ctx, domain.NewUser("ALICE@Example.COM", "Alice 2", "hash"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUserGetByEmailFoldsCase(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, domain.NewUser("alice@example.com", "Alice", "hash")))

	found, err := repo.GetByEmail(ctx, "Alice@EXAMPLE.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "alice@example.com", found.Email)

	missing, err := repo.GetByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserFetch(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, domain.NewUser("alice@example.com", "Alice", "hash")))
	require.NoError(t, repo.Create(ctx, domain.NewUser("bob@example.com", "Bob", "hash")))

	users, err := repo.Fetch(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
