package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Playlist 用户维护的专辑合集
// AlbumIDs 逻辑上不允许重复，追加前先检查
type Playlist struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	UserID      string    `bson:"user_id" json:"user_id"`
	AlbumIDs    []string  `bson:"album_ids" json:"album_ids"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
	IsPublic    bool      `bson:"is_public" json:"is_public"`
	ImageURL    string    `bson:"image_url,omitempty" json:"image_url,omitempty"`
}

// NewPlaylist 创建空歌单
func NewPlaylist(name, description, userID string, isPublic bool) *Playlist {
	now := time.Now().UTC()
	return &Playlist{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		UserID:      userID,
		AlbumIDs:    []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
		IsPublic:    isPublic,
	}
}

// Contains 专辑是否已在歌单内
func (p *Playlist) Contains(albumID string) bool {
	for _, id := range p.AlbumIDs {
		if id == albumID {
			return true
		}
	}
	return false
}

// PlaylistRepository 歌单持久化接口
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *Playlist) error
	// GetByID 不存在时返回 (nil, nil)
	GetByID(ctx context.Context, playlistID string) (*Playlist, error)
	GetByUser(ctx context.Context, userID string) ([]Playlist, error)
	// VisibleTo 自己的歌单 ∪ 他人的公开歌单
	VisibleTo(ctx context.Context, userID string) ([]Playlist, error)

	// 变更操作返回是否生效：目标不存在或操作无意义时为 false
	AddAlbum(ctx context.Context, playlistID, albumID string) (bool, error)
	// RemoveAlbum 防御性移除所有匹配项（即使存在重复）
	RemoveAlbum(ctx context.Context, playlistID, albumID string) (bool, error)
	UpdateInfo(ctx context.Context, playlistID, name, description string, isPublic bool) (bool, error)
	// ReplaceAlbums 整体覆盖成员列表（智能歌单快照写入）
	ReplaceAlbums(ctx context.Context, playlistID string, albumIDs []string) (bool, error)
	Delete(ctx context.Context, playlistID string) (bool, error)
}

// PlaylistUsecase 歌单业务接口
type PlaylistUsecase interface {
	Create(ctx context.Context, name, description, userID string, isPublic bool) (*Playlist, error)
	// CreateSmartPlaylist 按评分阈值快照生成，不随后续评分变动
	CreateSmartPlaylist(ctx context.Context, name, userID string, minRating int) (*Playlist, error)
	Get(ctx context.Context, playlistID string) (*Playlist, error)
	VisibleTo(ctx context.Context, userID string) ([]Playlist, error)
	AddAlbum(ctx context.Context, userID, playlistID, albumID string) (bool, error)
	RemoveAlbum(ctx context.Context, userID, playlistID, albumID string) (bool, error)
	UpdateInfo(ctx context.Context, userID, playlistID, name, description string, isPublic bool) (bool, error)
	Delete(ctx context.Context, userID, playlistID string) (bool, error)
	// AlbumsInPlaylist 用本地已有评分记录还原歌单内专辑信息
	AlbumsInPlaylist(ctx context.Context, playlistID string) ([]AlbumRating, error)
}
