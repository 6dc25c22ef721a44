package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
)

type playlistUsecase struct {
	playlistRepository domain.PlaylistRepository
	ratingRepository   domain.RatingRepository
	socialRepository   domain.SocialRepository
	userRepository     domain.UserRepository
	contextTimeout     time.Duration
}

// NewPlaylistUsecase 创建歌单业务实例
func NewPlaylistUsecase(
	playlistRepository domain.PlaylistRepository,
	ratingRepository domain.RatingRepository,
	socialRepository domain.SocialRepository,
	userRepository domain.UserRepository,
	timeout time.Duration,
) domain.PlaylistUsecase {
	return &playlistUsecase{
		playlistRepository: playlistRepository,
		ratingRepository:   ratingRepository,
		socialRepository:   socialRepository,
		userRepository:     userRepository,
		contextTimeout:     timeout,
	}
}

func (uc *playlistUsecase) Create(ctx context.Context, name, description, userID string, isPublic bool) (*domain.Playlist, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	if name == "" {
		return nil, fmt.Errorf("%w: 歌单名称不能为空", domain.ErrValidation)
	}

	playlist := domain.NewPlaylist(name, description, userID, isPublic)
	if err := uc.playlistRepository.Create(ctx, playlist); err != nil {
		return nil, err
	}
	uc.recordPlaylistActivity(ctx, userID)
	return playlist, nil
}

// CreateSmartPlaylist 按评分阈值生成快照歌单
// 成员在创建时刻固定，不随后续评分变动
func (uc *playlistUsecase) CreateSmartPlaylist(ctx context.Context, name, userID string, minRating int) (*domain.Playlist, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	if name == "" {
		return nil, fmt.Errorf("%w: 歌单名称不能为空", domain.ErrValidation)
	}
	if minRating < 1 || minRating > 5 {
		return nil, fmt.Errorf("%w: 评分阈值必须在1-5之间", domain.ErrValidation)
	}

	ratings, err := uc.ratingRepository.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	albumIDs := make([]string, 0)
	seen := make(map[string]bool)
	for _, rating := range ratings {
		if rating.Rating >= minRating && !seen[rating.AlbumID] {
			albumIDs = append(albumIDs, rating.AlbumID)
			seen[rating.AlbumID] = true
		}
	}

	description := fmt.Sprintf("Albums rated %d stars or higher", minRating)
	playlist := domain.NewPlaylist(name, description, userID, false)
	if err := uc.playlistRepository.Create(ctx, playlist); err != nil {
		return nil, err
	}
	if len(albumIDs) > 0 {
		if _, err := uc.playlistRepository.ReplaceAlbums(ctx, playlist.ID, albumIDs); err != nil {
			return nil, err
		}
		playlist.AlbumIDs = albumIDs
	}
	uc.recordPlaylistActivity(ctx, userID)
	return playlist, nil
}

// recordPlaylistActivity 写入建单动态，失败只记录
func (uc *playlistUsecase) recordPlaylistActivity(ctx context.Context, userID string) {
	if uc.socialRepository == nil || uc.userRepository == nil {
		return
	}
	user, err := uc.userRepository.GetByID(ctx, userID)
	if err != nil || user == nil {
		return
	}
	activity := domain.NewSocialActivity(userID, user.DisplayName, domain.ActivityPlaylistCreated)
	if err := uc.socialRepository.AddActivity(ctx, activity); err != nil {
		fmt.Printf("写入建单动态失败: %v\n", err)
	}
}

func (uc *playlistUsecase) Get(ctx context.Context, playlistID string) (*domain.Playlist, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	return uc.playlistRepository.GetByID(ctx, playlistID)
}

func (uc *playlistUsecase) VisibleTo(ctx context.Context, userID string) ([]domain.Playlist, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	return uc.playlistRepository.VisibleTo(ctx, userID)
}

// requireOwner 校验歌单归属，不存在时返回 (nil, nil)
func (uc *playlistUsecase) requireOwner(ctx context.Context, userID, playlistID string) (*domain.Playlist, error) {
	playlist, err := uc.playlistRepository.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist == nil {
		return nil, nil
	}
	if playlist.UserID != userID {
		return nil, fmt.Errorf("%w: 仅歌单所有者可修改", domain.ErrAuthRequired)
	}
	return playlist, nil
}

// AddAlbum 追加专辑，重复追加不生效返回 false
func (uc *playlistUsecase) AddAlbum(ctx context.Context, userID, playlistID, albumID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	playlist, err := uc.requireOwner(ctx, userID, playlistID)
	if err != nil {
		return false, err
	}
	if playlist == nil {
		return false, nil
	}
	return uc.playlistRepository.AddAlbum(ctx, playlistID, albumID)
}

func (uc *playlistUsecase) RemoveAlbum(ctx context.Context, userID, playlistID, albumID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	playlist, err := uc.requireOwner(ctx, userID, playlistID)
	if err != nil {
		return false, err
	}
	if playlist == nil {
		return false, nil
	}
	return uc.playlistRepository.RemoveAlbum(ctx, playlistID, albumID)
}

func (uc *playlistUsecase) UpdateInfo(ctx context.Context, userID, playlistID, name, description string, isPublic bool) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	if name == "" {
		return false, fmt.Errorf("%w: 歌单名称不能为空", domain.ErrValidation)
	}
	playlist, err := uc.requireOwner(ctx, userID, playlistID)
	if err != nil {
		return false, err
	}
	if playlist == nil {
		return false, nil
	}
	return uc.playlistRepository.UpdateInfo(ctx, playlistID, name, description, isPublic)
}

func (uc *playlistUsecase) Delete(ctx context.Context, userID, playlistID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	playlist, err := uc.requireOwner(ctx, userID, playlistID)
	if err != nil {
		return false, err
	}
	if playlist == nil {
		return false, nil
	}
	return uc.playlistRepository.Delete(ctx, playlistID)
}

// AlbumsInPlaylist 用已有评分记录还原歌单内专辑信息
// 每张专辑取任意一条评分作为展示来源，没有评分记录的专辑跳过
func (uc *playlistUsecase) AlbumsInPlaylist(ctx context.Context, playlistID string) ([]domain.AlbumRating, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	playlist, err := uc.playlistRepository.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist == nil {
		return nil, fmt.Errorf("%w: 歌单不存在", domain.ErrNotFound)
	}

	albums := make([]domain.AlbumRating, 0, len(playlist.AlbumIDs))
	for _, albumID := range playlist.AlbumIDs {
		ratings, err := uc.ratingRepository.GetByAlbum(ctx, albumID)
		if err != nil {
			return nil, err
		}
		if len(ratings) > 0 {
			albums = append(albums, ratings[0])
		}
	}
	return albums, nil
}
