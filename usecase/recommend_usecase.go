package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"golang.org/x/time/rate"
)

// maxRecommendations 单次分析保留的推荐条数上限
const maxRecommendations = 15

// recentWindow 推荐缓存的新鲜度窗口
const recentWindow = 24 * time.Hour

// Clock 可注入的时钟，测试中替换为固定时间
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock 真实时钟
func SystemClock() Clock { return systemClock{} }

// recommendCall 同一用户并发生成请求的合并单元
type recommendCall struct {
	done            chan struct{}
	recommendations []domain.AlbumRecommendation
	err             error
}

type recommendUsecase struct {
	ratingRepository    domain.RatingRepository
	profileRepository   domain.ProfileRepository
	recommendRepository domain.RecommendationRepository
	provider            domain.AlbumSearchProvider
	limiter             *rate.Limiter
	clock               Clock
	contextTimeout      time.Duration

	rngMu sync.Mutex
	rng   *rand.Rand

	inflightMu sync.Mutex
	inflight   map[string]*recommendCall
}

// NewRecommendUsecase 创建推荐引擎
// rng 可注入固定种子保证测试可复现，传nil时使用时间种子
func NewRecommendUsecase(
	ratingRepository domain.RatingRepository,
	profileRepository domain.ProfileRepository,
	recommendRepository domain.RecommendationRepository,
	provider domain.AlbumSearchProvider,
	clock Clock,
	rng *rand.Rand,
	timeout time.Duration,
) domain.RecommendUsecase {
	if clock == nil {
		clock = SystemClock()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &recommendUsecase{
		ratingRepository:    ratingRepository,
		profileRepository:   profileRepository,
		recommendRepository: recommendRepository,
		provider:            provider,
		// 查询间隔200ms，与外部API的限流节奏保持一致
		limiter:        rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
		clock:          clock,
		contextTimeout: timeout,
		rng:            rng,
		inflight:       map[string]*recommendCall{},
	}
}

// GenerateRecommendations 重建画像并执行三种策略
// 同一用户的并发调用合并为一次执行，后到者等待并共享结果
func (uc *recommendUsecase) GenerateRecommendations(ctx context.Context, userID string) ([]domain.AlbumRecommendation, error) {
	uc.inflightMu.Lock()
	if call, ok := uc.inflight[userID]; ok {
		uc.inflightMu.Unlock()
		select {
		case <-call.done:
			return call.recommendations, call.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	call := &recommendCall{done: make(chan struct{})}
	uc.inflight[userID] = call
	uc.inflightMu.Unlock()

	recommendations, err := uc.generate(ctx, userID)

	call.recommendations = recommendations
	call.err = err
	close(call.done)

	uc.inflightMu.Lock()
	delete(uc.inflight, userID)
	uc.inflightMu.Unlock()

	return recommendations, err
}

func (uc *recommendUsecase) generate(ctx context.Context, userID string) ([]domain.AlbumRecommendation, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	ratings, err := uc.ratingRepository.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := buildProfileFromRatings(userID, ratings)
	profile.LastUpdated = uc.clock.Now()
	if err := uc.profileRepository.Save(ctx, profile); err != nil {
		return nil, err
	}

	rated := make(map[string]bool, len(ratings))
	for _, rating := range ratings {
		rated[rating.AlbumID] = true
	}

	recommendations := make([]domain.AlbumRecommendation, 0, maxRecommendations)

	genreRecs, err := uc.genreRecommendations(ctx, profile, rated)
	if err != nil {
		return nil, err
	}
	recommendations = append(recommendations, genreRecs...)

	artistRecs, err := uc.artistRecommendations(ctx, profile, rated)
	if err != nil {
		return nil, err
	}
	recommendations = append(recommendations, artistRecs...)

	trendingRecs, err := uc.trendingRecommendations(ctx, profile, rated)
	if err != nil {
		return nil, err
	}
	recommendations = append(recommendations, trendingRecs...)

	// 按得分降序取前15
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})
	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}

	if err := uc.recommendRepository.Replace(ctx, userID, recommendations, uc.clock.Now()); err != nil {
		return nil, err
	}
	return recommendations, nil
}

// searchAlbums 限流后查询外部目录
func (uc *recommendUsecase) searchAlbums(ctx context.Context, query string) ([]domain.Album, error) {
	if err := uc.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return uc.provider.SearchAlbums(ctx, query)
}

func (uc *recommendUsecase) randomBoost(max float64) float64 {
	uc.rngMu.Lock()
	defer uc.rngMu.Unlock()
	return uc.rng.Float64() * max
}

type weightedKey struct {
	key    string
	weight float64
}

// topKeys 按权重降序取前n个键，权重相同时按名称排序保证确定性
func topKeys(weights map[string]float64, n int) []weightedKey {
	keys := make([]weightedKey, 0, len(weights))
	for key, weight := range weights {
		keys = append(keys, weightedKey{key: key, weight: weight})
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].weight != keys[j].weight {
			return keys[i].weight > keys[j].weight
		}
		return keys[i].key < keys[j].key
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// genreRecommendations 流派策略：前3个偏好流派，每个取3张专辑
// 单个查询失败只记录并跳过，上下文取消则中止整轮
func (uc *recommendUsecase) genreRecommendations(ctx context.Context, profile *domain.UserMusicProfile, rated map[string]bool) ([]domain.AlbumRecommendation, error) {
	recommendations := make([]domain.AlbumRecommendation, 0)

	for _, entry := range topKeys(profile.FavoriteGenres, 3) {
		albums, err := uc.searchAlbums(ctx, entry.key)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			fmt.Printf("搜索流派 %s 失败: %v\n", entry.key, err)
			continue
		}
		if len(albums) > 3 {
			albums = albums[:3]
		}
		for _, album := range albums {
			if rated[album.ID] {
				continue
			}
			score := entry.weight*0.8 + uc.randomBoost(0.2)
			rec := domain.NewAlbumRecommendation(
				album,
				score,
				fmt.Sprintf("Based on your taste for %s", entry.key),
				[]string{entry.key},
				"",
			)
			recommendations = append(recommendations, *rec)
		}
	}
	return recommendations, nil
}

// artistRecommendations 艺人策略：前2个高频艺人，每个取2张专辑
func (uc *recommendUsecase) artistRecommendations(ctx context.Context, profile *domain.UserMusicProfile, rated map[string]bool) ([]domain.AlbumRecommendation, error) {
	recommendations := make([]domain.AlbumRecommendation, 0)

	maxCount := 0
	counts := make(map[string]float64, len(profile.FavoriteArtists))
	for artist, count := range profile.FavoriteArtists {
		counts[artist] = float64(count)
		if count > maxCount {
			maxCount = count
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	for _, entry := range topKeys(counts, 2) {
		albums, err := uc.searchAlbums(ctx, entry.key)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			fmt.Printf("搜索艺人 %s 失败: %v\n", entry.key, err)
			continue
		}
		if len(albums) > 2 {
			albums = albums[:2]
		}
		for _, album := range albums {
			if rated[album.ID] {
				continue
			}
			artistWeight := entry.weight / float64(maxCount)
			score := artistWeight*0.9 + uc.randomBoost(0.1)
			rec := domain.NewAlbumRecommendation(
				album,
				score,
				fmt.Sprintf("More from %s, one of your favorite artists", entry.key),
				[]string{"favorite-artist"},
				entry.key,
			)
			recommendations = append(recommendations, *rec)
		}
	}
	return recommendations, nil
}

// trendingRecommendations 热门策略：仅在偏好流行音乐时执行
func (uc *recommendUsecase) trendingRecommendations(ctx context.Context, profile *domain.UserMusicProfile, rated map[string]bool) ([]domain.AlbumRecommendation, error) {
	recommendations := make([]domain.AlbumRecommendation, 0)
	if !profile.DiscoveryPreferences.PreferPopular {
		return recommendations, nil
	}

	trendingQueries := []string{"popular 2024", "best albums"}
	for _, query := range trendingQueries {
		albums, err := uc.searchAlbums(ctx, query)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			fmt.Printf("搜索热门专辑失败: %v\n", err)
			continue
		}
		if len(albums) > 2 {
			albums = albums[:2]
		}
		for _, album := range albums {
			if rated[album.ID] {
				continue
			}
			score := 0.6 + uc.randomBoost(0.3)
			rec := domain.NewAlbumRecommendation(
				album,
				score,
				"Trending and popular this year",
				[]string{"trending", "popular"},
				"",
			)
			recommendations = append(recommendations, *rec)
		}
	}
	return recommendations, nil
}

func (uc *recommendUsecase) CurrentRecommendations(ctx context.Context, userID string) ([]domain.AlbumRecommendation, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	recommendations, _, err := uc.recommendRepository.GetByUser(ctx, userID)
	return recommendations, err
}

func (uc *recommendUsecase) HasRecentRecommendations(ctx context.Context, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	recommendations, analyzedAt, err := uc.recommendRepository.GetByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	if len(recommendations) == 0 {
		return false, nil
	}
	return analyzedAt.After(uc.clock.Now().Add(-recentWindow)), nil
}

func (uc *recommendUsecase) MarkRecommendationSeen(ctx context.Context, userID, recommendationID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	return uc.recommendRepository.RemoveOne(ctx, userID, recommendationID)
}

func (uc *recommendUsecase) BuildProfile(ctx context.Context, userID string) (*domain.UserMusicProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	ratings, err := uc.ratingRepository.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := buildProfileFromRatings(userID, ratings)
	profile.LastUpdated = uc.clock.Now()
	if err := uc.profileRepository.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
