package usecase

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBeatlesRating(t *testing.T, repos *testRepos) {
	t.Helper()
	ratingUC := NewRatingUsecase(repos.rating, repos.social, testTimeout)
	_, err := ratingUC.SubmitRating(context.Background(), "u1", "User One",
		testAlbum("a1", "Abbey Road", "The Beatles"), 5, "")
	require.NoError(t, err)
}

func TestGenerateRecommendationsSkipsRatedAndSorts(t *testing.T) {
	repos := newTestRepos(t)
	seedBeatlesRating(t, repos)

	provider := newFakeProvider()
	// 单一艺人画像：流派 classic/pop/rock 权重均为1.0，取名称序前3
	provider.results["rock"] = []domain.Album{
		testAlbum("r1", "Rock One", "Nirvana"),
		testAlbum("a1", "Abbey Road", "The Beatles"), // 已评分，应跳过
		testAlbum("r2", "Rock Two", "Nirvana"),
	}
	provider.results["pop"] = []domain.Album{testAlbum("p1", "Pop One", "Billie Eilish")}
	provider.results["The Beatles"] = []domain.Album{
		testAlbum("b1", "Revolver", "The Beatles"),
		testAlbum("b2", "Rubber Soul", "The Beatles"),
	}
	provider.results["popular 2024"] = []domain.Album{testAlbum("t1", "Trending One", "Taylor Swift")}
	provider.errs["best albums"] = errors.New("rate limited")

	clock := newFakeClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	uc := NewRecommendUsecase(repos.rating, repos.profile, repos.recommend, provider,
		clock, rand.New(rand.NewSource(1)), testTimeout)

	recommendations, err := uc.GenerateRecommendations(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, recommendations, 6)

	for i, rec := range recommendations {
		assert.NotEqual(t, "a1", rec.Album.ID)
		if i > 0 {
			assert.GreaterOrEqual(t, recommendations[i-1].Score, rec.Score)
		}
	}

	// 生成结果落入缓存
	cached, err := uc.CurrentRecommendations(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, cached, 6)

	// 画像同步重建并保存
	profile, err := repos.profile.GetByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, 1, profile.FavoriteArtists["The Beatles"])
}

func TestGenerateRecommendationsTruncatesToFifteen(t *testing.T) {
	repos := newTestRepos(t)
	ratingUC := NewRatingUsecase(repos.rating, repos.social, testTimeout)
	ctx := context.Background()
	_, err := ratingUC.SubmitRating(ctx, "u1", "User One", testAlbum("a1", "Abbey Road", "The Beatles"), 5, "")
	require.NoError(t, err)
	_, err = ratingUC.SubmitRating(ctx, "u1", "User One", testAlbum("a2", "OK Computer", "Radiohead"), 5, "")
	require.NoError(t, err)

	provider := newFakeProvider()
	albums := func(prefix string, n int) []domain.Album {
		out := make([]domain.Album, 0, n)
		for i := 0; i < n; i++ {
			id := prefix + string(rune('0'+i))
			out = append(out, testAlbum(id, "Album "+id, "Various"))
		}
		return out
	}
	// 流派前3：rock（权重最高）、alternative、classic；艺人前2：Radiohead、The Beatles
	provider.results["rock"] = albums("g1-", 3)
	provider.results["alternative"] = albums("g2-", 3)
	provider.results["classic"] = albums("g3-", 3)
	provider.results["Radiohead"] = albums("ar1-", 2)
	provider.results["The Beatles"] = albums("ar2-", 2)
	provider.results["popular 2024"] = albums("tr1-", 2)
	provider.results["best albums"] = albums("tr2-", 2)

	uc := NewRecommendUsecase(repos.rating, repos.profile, repos.recommend, provider,
		newFakeClock(time.Now().UTC()), rand.New(rand.NewSource(1)), testTimeout)

	recommendations, err := uc.GenerateRecommendations(ctx, "u1")
	require.NoError(t, err)
	// 17条候选截断到15
	assert.Len(t, recommendations, 15)
}

func TestGenerateRecommendationsDeterministicWithSeed(t *testing.T) {
	run := func() []float64 {
		repos := newTestRepos(t)
		seedBeatlesRating(t, repos)

		provider := newFakeProvider()
		provider.results["rock"] = []domain.Album{testAlbum("r1", "Rock One", "Nirvana")}
		provider.results["The Beatles"] = []domain.Album{testAlbum("b1", "Revolver", "The Beatles")}
		provider.results["popular 2024"] = []domain.Album{testAlbum("t1", "Trending One", "Taylor Swift")}

		uc := NewRecommendUsecase(repos.rating, repos.profile, repos.recommend, provider,
			newFakeClock(time.Now().UTC()), rand.New(rand.NewSource(42)), testTimeout)

		recommendations, err := uc.GenerateRecommendations(context.Background(), "u1")
		require.NoError(t, err)
		scores := make([]float64, 0, len(recommendations))
		for _, rec := range recommendations {
			scores = append(scores, rec.Score)
		}
		return scores
	}

	assert.Equal(t, run(), run())
}

func TestGenerateRecommendationsSurvivesProviderFailures(t *testing.T) {
	repos := newTestRepos(t)
	seedBeatlesRating(t, repos)

	provider := newFakeProvider()
	for _, query := range []string{"classic", "pop", "rock", "The Beatles", "popular 2024", "best albums"} {
		provider.errs[query] = errors.New("upstream down")
	}

	uc := NewRecommendUsecase(repos.rating, repos.profile, repos.recommend, provider,
		newFakeClock(time.Now().UTC()), rand.New(rand.NewSource(1)), testTimeout)

	// 单个查询失败只跳过，整体不报错
	recommendations, err := uc.GenerateRecommendations(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, recommendations)

	// 空结果不算新鲜缓存
	recent, err := uc.HasRecentRecommendations(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, recent)
}

func TestGenerateRecommendationsAbortsOnCancel(t *testing.T) {
	repos := newTestRepos(t)

	uc := NewRecommendUsecase(repos.rating, repos.profile, repos.recommend, newFakeProvider(),
		newFakeClock(time.Now().UTC()), rand.New(rand.NewSource(1)), testTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := uc.GenerateRecommendations(ctx, "u1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHasRecentRecommendationsLifecycle(t *testing.T) {
	repos := newTestRepos(t)
	seedBeatlesRating(t, repos)

	provider := newFakeProvider()
	provider.results["rock"] = []domain.Album{testAlbum("r1", "Rock One", "Nirvana")}

	clock := newFakeClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	uc := NewRecommendUsecase(repos.rating, repos.profile, repos.recommend, provider,
		clock, rand.New(rand.NewSource(1)), testTimeout)
	ctx := context.Background()

	recent, err := uc.HasRecentRecommendations(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, recent)

	_, err = uc.GenerateRecommendations(ctx, "u1")
	require.NoError(t, err)

	recent, err = uc.HasRecentRecommendations(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, recent)

	// 超过24小时后过期
	clock.Advance(25 * time.Hour)
	recent, err = uc.HasRecentRecommendations(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, recent)

	_, err = uc.GenerateRecommendations(ctx, "u1")
	require.NoError(t, err)
	recent, err = uc.HasRecentRecommendations(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, recent)
}

func TestMarkRecommendationSeen(t *testing.T) {
	repos := newTestRepos(t)
	seedBeatlesRating(t, repos)

	provider := newFakeProvider()
	provider.results["rock"] = []domain.Album{
		testAlbum("r1", "Rock One", "Nirvana"),
		testAlbum("r2", "Rock Two", "Nirvana"),
	}

	uc := NewRecommendUsecase(repos.rating, repos.profile, repos.recommend, provider,
		newFakeClock(time.Now().UTC()), rand.New(rand.NewSource(1)), testTimeout)
	ctx := context.Background()

	recommendations, err := uc.GenerateRecommendations(ctx, "u1")
	require.NoError(t, err)
	require.NotEmpty(t, recommendations)

	removed, err := uc.MarkRecommendationSeen(ctx, "u1", recommendations[0].ID)
	require.NoError(t, err)
	assert.True(t, removed)

	remaining, err := uc.CurrentRecommendations(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, remaining, len(recommendations)-1)

	removed, err = uc.MarkRecommendationSeen(ctx, "u1", "no-such-id")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestConcurrentGenerateCoalesces(t *testing.T) {
	repos := newTestRepos(t)
	seedBeatlesRating(t, repos)

	inner := newFakeProvider()
	inner.results["rock"] = []domain.Album{testAlbum("r1", "Rock One", "Nirvana")}
	provider := newGatedProvider(inner)

	uc := NewRecommendUsecase(repos.rating, repos.profile, repos.recommend, provider,
		newFakeClock(time.Now().UTC()), rand.New(rand.NewSource(1)), testTimeout)
	ctx := context.Background()

	var wg sync.WaitGroup
	var entered sync.WaitGroup
	results := make([][]domain.AlbumRecommendation, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		entered.Add(1)
		go func(n int) {
			defer wg.Done()
			entered.Done()
			recommendations, err := uc.GenerateRecommendations(ctx, "u1")
			assert.NoError(t, err)
			results[n] = recommendations
		}(i)
	}

	// 先行者在首个外部查询处被拦住，两个调用方都就位后才放行
	entered.Wait()
	provider.open()
	wg.Wait()

	// 同一用户的并发请求合并为一次执行：6个查询只打了一轮
	assert.Equal(t, 6, inner.callCount())
	assert.Equal(t, len(results[0]), len(results[1]))
}

func TestBuildProfilePersists(t *testing.T) {
	repos := newTestRepos(t)
	seedBeatlesRating(t, repos)

	uc := NewRecommendUsecase(repos.rating, repos.profile, repos.recommend, newFakeProvider(),
		newFakeClock(time.Now().UTC()), rand.New(rand.NewSource(1)), testTimeout)

	profile, err := uc.BuildProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, profile.FavoriteArtists["The Beatles"])

	stored, err := repos.profile.GetByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.InDelta(t, 1.0, stored.FavoriteGenres["rock"], 1e-9)
}
