package repository_local

import (
	"context"
	"testing"
	"time"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRecommendation(albumID string, score float64) domain.AlbumRecommendation {
	album := domain.Album{ID: albumID, Name: "Album " + albumID}
	return *domain.NewAlbumRecommendation(album, score, "test", nil, "")
}

func TestRecommendReplaceAndGet(t *testing.T) {
	repo := NewRecommendRepository(newTestStore(t))
	ctx := context.Background()

	analyzedAt := time.Now().UTC().Truncate(time.Second)
	recs := []domain.AlbumRecommendation{
		makeRecommendation("a1", 0.9),
		makeRecommendation("a2", 0.5),
	}
	require.NoError(t, repo.Replace(ctx, "u1", recs, analyzedAt))

	loaded, loadedAt, err := repo.GetByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
	assert.True(t, loadedAt.Equal(analyzedAt))

	// 每个用户独立缓存
	empty, zero, err := repo.GetByUser(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.True(t, zero.IsZero())
}

func TestRecommendRemoveOne(t *testing.T) {
	repo := NewRecommendRepository(newTestStore(t))
	ctx := context.Background()

	recs := []domain.AlbumRecommendation{
		makeRecommendation("a1", 0.9),
		makeRecommendation("a2", 0.5),
	}
	require.NoError(t, repo.Replace(ctx, "u1", recs, time.Now().UTC()))

	removed, err := repo.RemoveOne(ctx, "u1", recs[0].ID)
	require.NoError(t, err)
	assert.True(t, removed)

	loaded, _, err := repo.GetByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, recs[1].ID, loaded[0].ID)

	removed, err = repo.RemoveOne(ctx, "u1", "no-such-id")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestProfileSaveOverwrites(t *testing.T) {
	repo := NewProfileRepository(newTestStore(t))
	ctx := context.Background()

	missing, err := repo.GetByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	first := domain.NewUserMusicProfile("u1")
	first.FavoriteArtists["The Beatles"] = 1
	require.NoError(t, repo.Save(ctx, first))

	second := domain.NewUserMusicProfile("u1")
	second.FavoriteArtists["Radiohead"] = 2
	require.NoError(t, repo.Save(ctx, second))

	loaded, err := repo.GetByUser(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	// 整体覆盖，不做合并
	assert.NotContains(t, loaded.FavoriteArtists, "The Beatles")
	assert.Equal(t, 2, loaded.FavoriteArtists["Radiohead"])
}
