package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/Super-Badmen-Viper/PitchPlease/repository/repository_local"
	"github.com/Super-Badmen-Viper/PitchPlease/storage"
	"github.com/stretchr/testify/require"
)

const testTimeout = 5 * time.Second

// testRepos 测试用本地仓库集合（内存badger）
type testRepos struct {
	user      domain.UserRepository
	rating    domain.RatingRepository
	playlist  domain.PlaylistRepository
	social    domain.SocialRepository
	profile   domain.ProfileRepository
	recommend domain.RecommendationRepository
}

func newTestRepos(t *testing.T) *testRepos {
	store, err := storage.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return &testRepos{
		user:      repository_local.NewUserRepository(store),
		rating:    repository_local.NewRatingRepository(store),
		playlist:  repository_local.NewPlaylistRepository(store),
		social:    repository_local.NewSocialRepository(store),
		profile:   repository_local.NewProfileRepository(store),
		recommend: repository_local.NewRecommendRepository(store),
	}
}

func testAlbum(albumID, name, artist string) domain.Album {
	return domain.Album{
		ID:      albumID,
		Name:    name,
		Artists: []domain.AlbumArtist{{Name: artist}},
	}
}

// fakeClock 固定时钟，可手动拨动
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeProvider 预置结果的专辑搜索，记录调用次数
type fakeProvider struct {
	mu      sync.Mutex
	results map[string][]domain.Album
	errs    map[string]error
	calls   int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		results: map[string][]domain.Album{},
		errs:    map[string]error{},
	}
}

func (p *fakeProvider) SearchAlbums(ctx context.Context, query string) ([]domain.Album, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if err, ok := p.errs[query]; ok {
		return nil, err
	}
	return p.results[query], nil
}

func (p *fakeProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// gatedProvider 在放行前拦住所有查询，用于让并发调用方先行汇合
type gatedProvider struct {
	inner   *fakeProvider
	release chan struct{}
}

func newGatedProvider(inner *fakeProvider) *gatedProvider {
	return &gatedProvider{inner: inner, release: make(chan struct{})}
}

func (p *gatedProvider) open() { close(p.release) }

func (p *gatedProvider) SearchAlbums(ctx context.Context, query string) ([]domain.Album, error) {
	select {
	case <-p.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return p.inner.SearchAlbums(ctx, query)
}
