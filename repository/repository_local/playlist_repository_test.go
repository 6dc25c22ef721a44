package repository_local

import (
	"context"
	"testing"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaylistCreateAndGetByID(t *testing.T) {
	repo := NewPlaylistRepository(newTestStore(t))
	ctx := context.Background()

	playlist := domain.NewPlaylist("Favorites", "", "u1", false)
	require.NoError(t, repo.Create(ctx, playlist))

	found, err := repo.GetByID(ctx, playlist.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Favorites", found.Name)

	missing, err := repo.GetByID(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPlaylistAddAlbumIdempotent(t *testing.T) {
	repo := NewPlaylistRepository(newTestStore(t))
	ctx := context.Background()

	playlist := domain.NewPlaylist("Favorites", "", "u1", false)
	require.NoError(t, repo.Create(ctx, playlist))

	added, err := repo.AddAlbum(ctx, playlist.ID, "a1")
	require.NoError(t, err)
	assert.True(t, added)

	// 重复追加不生效
	added, err = repo.AddAlbum(ctx, playlist.ID, "a1")
	require.NoError(t, err)
	assert.False(t, added)

	found, err := repo.GetByID(ctx, playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, found.AlbumIDs)

	// 目标歌单不存在
	added, err = repo.AddAlbum(ctx, "no-such-id", "a1")
	require.NoError(t, err)
	assert.False(t, added)
}

func TestPlaylistRemoveAlbum(t *testing.T) {
	repo := NewPlaylistRepository(newTestStore(t))
	ctx := context.Background()

	playlist := domain.NewPlaylist("Favorites", "", "u1", false)
	require.NoError(t, repo.Create(ctx, playlist))
	_, err := repo.AddAlbum(ctx, playlist.ID, "a1")
	require.NoError(t, err)
	_, err = repo.AddAlbum(ctx, playlist.ID, "a2")
	require.NoError(t, err)

	removed, err := repo.RemoveAlbum(ctx, playlist.ID, "a1")
	require.NoError(t, err)
	assert.True(t, removed)

	found, err := repo.GetByID(ctx, playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a2"}, found.AlbumIDs)

	removed, err = repo.RemoveAlbum(ctx, "no-such-id", "a2")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestPlaylistRemoveAbsentAlbumLeavesUpdatedAt(t *testing.T) {
	repo := NewPlaylistRepository(newTestStore(t))
	ctx := context.Background()

	playlist := domain.NewPlaylist("Favorites", "", "u1", false)
	require.NoError(t, repo.Create(ctx, playlist))
	_, err := repo.AddAlbum(ctx, playlist.ID, "a1")
	require.NoError(t, err)

	before, err := repo.GetByID(ctx, playlist.ID)
	require.NoError(t, err)

	// 不存在的专辑：不生效，也不推进修改时间
	removed, err := repo.RemoveAlbum(ctx, playlist.ID, "missing")
	require.NoError(t, err)
	assert.False(t, removed)

	after, err := repo.GetByID(ctx, playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
	assert.Equal(t, []string{"a1"}, after.AlbumIDs)
}

func TestPlaylistVisibleTo(t *testing.T) {
	repo := NewPlaylistRepository(newTestStore(t))
	ctx := context.Background()

	mine := domain.NewPlaylist("Mine", "", "u1", false)
	theirsPublic := domain.NewPlaylist("Theirs Public", "", "u2", true)
	theirsPrivate := domain.NewPlaylist("Theirs Private", "", "u2", false)
	require.NoError(t, repo.Create(ctx, mine))
	require.NoError(t, repo.Create(ctx, theirsPublic))
	require.NoError(t, repo.Create(ctx, theirsPrivate))

	visible, err := repo.VisibleTo(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, visible, 2)
	names := []string{visible[0].Name, visible[1].Name}
	assert.Contains(t, names, "Mine")
	assert.Contains(t, names, "Theirs Public")
}

func TestPlaylistUpdateInfoAndReplaceAlbums(t *testing.T) {
	repo := NewPlaylistRepository(newTestStore(t))
	ctx := context.Background()

	playlist := domain.NewPlaylist("Old", "old", "u1", false)
	require.NoError(t, repo.Create(ctx, playlist))

	updated, err := repo.UpdateInfo(ctx, playlist.ID, "New", "new", true)
	require.NoError(t, err)
	assert.True(t, updated)

	replaced, err := repo.ReplaceAlbums(ctx, playlist.ID, []string{"a1", "a2"})
	require.NoError(t, err)
	assert.True(t, replaced)

	found, err := repo.GetByID(ctx, playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", found.Name)
	assert.True(t, found.IsPublic)
	assert.Equal(t, []string{"a1", "a2"}, found.AlbumIDs)
}

func TestPlaylistDelete(t *testing.T) {
	repo := NewPlaylistRepository(newTestStore(t))
	ctx := context.Background()

	playlist := domain.NewPlaylist("Favorites", "", "u1", false)
	require.NoError(t, repo.Create(ctx, playlist))

	deleted, err := repo.Delete(ctx, playlist.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, playlist.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
