package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
)

type ratingUsecase struct {
	ratingRepository domain.RatingRepository
	socialRepository domain.SocialRepository
	contextTimeout   time.Duration
}

// NewRatingUsecase 创建评分业务实例
// socialRepository 用于写入动态流，可为nil（跳过动态记录）
func NewRatingUsecase(ratingRepository domain.RatingRepository, socialRepository domain.SocialRepository, timeout time.Duration) domain.RatingUsecase {
	return &ratingUsecase{
		ratingRepository: ratingRepository,
		socialRepository: socialRepository,
		contextTimeout:   timeout,
	}
}

// SubmitRating 提交评分
// 该用户已评过该专辑时改为原地更新，保证 (userId, albumId) 至多一条
func (uc *ratingUsecase) SubmitRating(ctx context.Context, userID, userDisplayName string, album domain.Album, rating int, review string) (*domain.AlbumRating, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: 评分必须在1-5星之间", domain.ErrValidation)
	}
	if album.ID == "" {
		return nil, fmt.Errorf("%w: 缺少专辑ID", domain.ErrValidation)
	}

	existing, err := uc.ratingRepository.HasUserRated(ctx, userID, album.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Rating = rating
		existing.Review = review
		existing.UpdatedAt = time.Now().UTC()
		if err := uc.ratingRepository.Update(ctx, existing); err != nil {
			return nil, err
		}
		uc.recordRatingActivity(ctx, existing)
		return existing, nil
	}

	record := domain.NewAlbumRating(userID, userDisplayName, album, rating, review)
	if err := uc.ratingRepository.Save(ctx, record); err != nil {
		return nil, err
	}
	uc.recordRatingActivity(ctx, record)
	return record, nil
}

// recordRatingActivity 写入动态流，失败只记录不影响评分本身
func (uc *ratingUsecase) recordRatingActivity(ctx context.Context, rating *domain.AlbumRating) {
	if uc.socialRepository == nil {
		return
	}

	activity := domain.NewSocialActivity(rating.UserID, rating.UserDisplayName, domain.ActivityNewRating)
	activity.AlbumID = rating.AlbumID
	activity.AlbumName = rating.AlbumName
	activity.ArtistName = rating.ArtistName
	activity.Rating = rating.Rating
	activity.Review = rating.Review
	if err := uc.socialRepository.AddActivity(ctx, activity); err != nil {
		fmt.Printf("写入评分动态失败: %v\n", err)
	}

	// 5星评分额外产生一条高分动态
	if rating.Rating == 5 {
		highlight := domain.NewSocialActivity(rating.UserID, rating.UserDisplayName, domain.ActivityHighRating)
		highlight.AlbumID = rating.AlbumID
		highlight.AlbumName = rating.AlbumName
		highlight.ArtistName = rating.ArtistName
		highlight.Rating = rating.Rating
		if err := uc.socialRepository.AddActivity(ctx, highlight); err != nil {
			fmt.Printf("写入高分动态失败: %v\n", err)
		}
	}
}

// UpdateRating 更新评分，仅作者本人可操作
// 在该用户名下找不到目标ID时返回 ErrNotFound（含他人的评分）
func (uc *ratingUsecase) UpdateRating(ctx context.Context, userID string, rating *domain.AlbumRating) error {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	if !rating.IsValidRating() {
		return fmt.Errorf("%w: 评分必须在1-5星之间", domain.ErrValidation)
	}

	ratings, err := uc.ratingRepository.GetByUser(ctx, userID)
	if err != nil {
		return err
	}
	for i := range ratings {
		if ratings[i].ID == rating.ID {
			existing := ratings[i]
			existing.Rating = rating.Rating
			existing.Review = rating.Review
			existing.UpdatedAt = time.Now().UTC()
			return uc.ratingRepository.Update(ctx, &existing)
		}
	}
	return fmt.Errorf("%w: 评分不存在", domain.ErrNotFound)
}

// DeleteRating 删除评分，目标不存在或不属于该用户时静默成功
func (uc *ratingUsecase) DeleteRating(ctx context.Context, userID, ratingID string) error {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	ratings, err := uc.ratingRepository.GetByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, rating := range ratings {
		if rating.ID == ratingID {
			return uc.ratingRepository.Delete(ctx, ratingID)
		}
	}
	return nil
}

func (uc *ratingUsecase) RatingsForUser(ctx context.Context, userID string) ([]domain.AlbumRating, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	return uc.ratingRepository.GetByUser(ctx, userID)
}

func (uc *ratingUsecase) RatingsForAlbum(ctx context.Context, albumID string) ([]domain.AlbumRating, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	return uc.ratingRepository.GetByAlbum(ctx, albumID)
}

func (uc *ratingUsecase) PublicFeed(ctx context.Context, limit int) ([]domain.AlbumRating, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	return uc.ratingRepository.GetAllPublic(ctx, limit)
}

func (uc *ratingUsecase) AlbumAverage(ctx context.Context, albumID string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	return uc.ratingRepository.AverageRating(ctx, albumID)
}

// UserStats 单用户评分统计，无评分时均值为0
func (uc *ratingUsecase) UserStats(ctx context.Context, userID string) (*domain.UserRatingStats, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	ratings, err := uc.ratingRepository.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := &domain.UserRatingStats{UserID: userID, RatingCount: len(ratings)}
	if len(ratings) == 0 {
		return stats, nil
	}
	total := 0
	for _, rating := range ratings {
		total += rating.Rating
	}
	stats.AverageRating = float64(total) / float64(len(ratings))
	return stats, nil
}
