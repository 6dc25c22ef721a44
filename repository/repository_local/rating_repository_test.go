package repository_local

import (
	"context"
	"testing"
	"time"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/Super-Badmen-Viper/PitchPlease/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *storage.Store {
	store, err := storage.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func makeRating(userID, albumID string, rating int) *domain.AlbumRating {
	album := domain.Album{
		ID:      albumID,
		Name:    "Album " + albumID,
		Artists: []domain.AlbumArtist{{Name: "The Beatles"}},
	}
	return domain.NewAlbumRating(userID, "User "+userID, album, rating, "")
}

func TestRatingSaveAndGetByUser(t *testing.T) {
	repo := NewRatingRepository(newTestStore(t))
	ctx := context.Background()

	first := makeRating("u1", "a1", 4)
	first.UpdatedAt = time.Now().UTC().Add(-time.Hour)
	second := makeRating("u1", "a2", 5)
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))
	require.NoError(t, repo.Save(ctx, makeRating("u2", "a1", 2)))

	ratings, err := repo.GetByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, ratings, 2)
	// 按更新时间降序
	assert.Equal(t, "a2", ratings[0].AlbumID)
	assert.Equal(t, "a1", ratings[1].AlbumID)
}

func TestRatingUpdateMissingReturnsErrNotFound(t *testing.T) {
	repo := NewRatingRepository(newTestStore(t))

	missing := makeRating("u1", "a1", 3)
	err := repo.Update(context.Background(), missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRatingUpdateChangesFields(t *testing.T) {
	repo := NewRatingRepository(newTestStore(t))
	ctx := context.Background()

	rating := makeRating("u1", "a1", 3)
	require.NoError(t, repo.Save(ctx, rating))

	rating.Rating = 5
	rating.Review = "grown on me"
	require.NoError(t, repo.Update(ctx, rating))

	stored, err := repo.HasUserRated(ctx, "u1", "a1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 5, stored.Rating)
	assert.Equal(t, "grown on me", stored.Review)
}

func TestRatingDeleteSilentOnMissing(t *testing.T) {
	repo := NewRatingRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, "no-such-id"))

	rating := makeRating("u1", "a1", 4)
	require.NoError(t, repo.Save(ctx, rating))
	require.NoError(t, repo.Delete(ctx, rating.ID))

	ratings, err := repo.GetByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, ratings)
}

func TestRatingHasUserRated(t *testing.T) {
	repo := NewRatingRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, makeRating("u1", "a1", 4)))

	found, err := repo.HasUserRated(ctx, "u1", "a1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "a1", found.AlbumID)

	missing, err := repo.HasUserRated(ctx, "u1", "a2")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRatingAverage(t *testing.T) {
	repo := NewRatingRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, makeRating("u1", "a1", 5)))
	require.NoError(t, repo.Save(ctx, makeRating("u2", "a1", 4)))
	require.NoError(t, repo.Save(ctx, makeRating("u3", "a2", 3)))

	average, err := repo.AverageRating(ctx, "a1")
	require.NoError(t, err)
	assert.InDelta(t, 4.5, average, 1e-9)

	average, err = repo.AverageRating(ctx, "a2")
	require.NoError(t, err)
	assert.InDelta(t, 3.0, average, 1e-9)

	// 无评分返回0而非NaN
	average, err = repo.AverageRating(ctx, "a3")
	require.NoError(t, err)
	assert.Zero(t, average)
}

func TestRatingGetAllPublicLimit(t *testing.T) {
	repo := NewRatingRepository(newTestStore(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Save(ctx, makeRating("u1", string(rune('a'+i)), 3)))
	}

	ratings, err := repo.GetAllPublic(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, ratings, 3)
}
