package repository_local

import (
	"context"
	"sort"
	"time"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/Super-Badmen-Viper/PitchPlease/storage"
)

type playlistRepository struct {
	store *storage.Store
}

// NewPlaylistRepository 本地存储的歌单仓库
func NewPlaylistRepository(store *storage.Store) domain.PlaylistRepository {
	return &playlistRepository{store: store}
}

func (r *playlistRepository) Create(ctx context.Context, playlist *domain.Playlist) error {
	return storage.UpdateCollection(r.store, domain.CollectionPlaylist,
		func(items []domain.Playlist) ([]domain.Playlist, error) {
			return append(items, *playlist), nil
		})
}

func (r *playlistRepository) GetByID(ctx context.Context, playlistID string) (*domain.Playlist, error) {
	items, err := storage.LoadCollection[domain.Playlist](r.store, domain.CollectionPlaylist)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ID == playlistID {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

func (r *playlistRepository) GetByUser(ctx context.Context, userID string) ([]domain.Playlist, error) {
	items, err := storage.LoadCollection[domain.Playlist](r.store, domain.CollectionPlaylist)
	if err != nil {
		return nil, err
	}
	matched := make([]domain.Playlist, 0)
	for _, item := range items {
		if item.UserID == userID {
			matched = append(matched, item)
		}
	}
	sortPlaylistsByUpdatedAtDesc(matched)
	return matched, nil
}

func (r *playlistRepository) VisibleTo(ctx context.Context, userID string) ([]domain.Playlist, error) {
	items, err := storage.LoadCollection[domain.Playlist](r.store, domain.CollectionPlaylist)
	if err != nil {
		return nil, err
	}
	visible := make([]domain.Playlist, 0)
	for _, item := range items {
		if item.UserID == userID || item.IsPublic {
			visible = append(visible, item)
		}
	}
	sortPlaylistsByUpdatedAtDesc(visible)
	return visible, nil
}

// mutate 定位歌单并应用变更，返回是否生效
func (r *playlistRepository) mutate(playlistID string, fn func(p *domain.Playlist) bool) (bool, error) {
	applied := false
	err := storage.UpdateCollection(r.store, domain.CollectionPlaylist,
		func(items []domain.Playlist) ([]domain.Playlist, error) {
			for i := range items {
				if items[i].ID == playlistID {
					if fn(&items[i]) {
						items[i].UpdatedAt = time.Now().UTC()
						applied = true
					}
					return items, nil
				}
			}
			return items, nil
		})
	return applied, err
}

func (r *playlistRepository) AddAlbum(ctx context.Context, playlistID, albumID string) (bool, error) {
	return r.mutate(playlistID, func(p *domain.Playlist) bool {
		if p.Contains(albumID) {
			return false
		}
		p.AlbumIDs = append(p.AlbumIDs, albumID)
		return true
	})
}

func (r *playlistRepository) RemoveAlbum(ctx context.Context, playlistID, albumID string) (bool, error) {
	return r.mutate(playlistID, func(p *domain.Playlist) bool {
		kept := p.AlbumIDs[:0]
		removed := false
		for _, id := range p.AlbumIDs {
			if id == albumID {
				removed = true
				continue
			}
			kept = append(kept, id)
		}
		p.AlbumIDs = kept
		return removed
	})
}

func (r *playlistRepository) UpdateInfo(ctx context.Context, playlistID, name, description string, isPublic bool) (bool, error) {
	return r.mutate(playlistID, func(p *domain.Playlist) bool {
		p.Name = name
		p.Description = description
		p.IsPublic = isPublic
		return true
	})
}

func (r *playlistRepository) ReplaceAlbums(ctx context.Context, playlistID string, albumIDs []string) (bool, error) {
	return r.mutate(playlistID, func(p *domain.Playlist) bool {
		p.AlbumIDs = append([]string{}, albumIDs...)
		return true
	})
}

func (r *playlistRepository) Delete(ctx context.Context, playlistID string) (bool, error) {
	removed := false
	err := storage.UpdateCollection(r.store, domain.CollectionPlaylist,
		func(items []domain.Playlist) ([]domain.Playlist, error) {
			kept := items[:0]
			for _, item := range items {
				if item.ID != playlistID {
					kept = append(kept, item)
				} else {
					removed = true
				}
			}
			return kept, nil
		})
	return removed, err
}

func sortPlaylistsByUpdatedAtDesc(items []domain.Playlist) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})
}
