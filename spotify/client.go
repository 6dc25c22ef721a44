package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/sony/gobreaker/v2"
)

const (
	defaultBaseURL  = "https://api.spotify.com"
	defaultTokenURL = "https://accounts.spotify.com/api/token"

	// searchLimit 单次搜索返回条数
	searchLimit = 10
)

// Client Spotify专辑搜索客户端
// 使用 client credentials 模式，token在进程内缓存并提前60秒刷新
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	tokenURL     string
	httpClient   *http.Client
	breaker      *gobreaker.CircuitBreaker[[]domain.Album]

	tokenMu     sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient 创建客户端，连续失败5次后熔断30秒
func NewClient(clientID, clientSecret string) *Client {
	settings := gobreaker.Settings{
		Name:    "spotify-search",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      defaultBaseURL,
		tokenURL:     defaultTokenURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		breaker:      gobreaker.NewCircuitBreaker[[]domain.Album](settings),
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type searchResponse struct {
	Albums struct {
		Items []domain.Album `json:"items"`
	} `json:"albums"`
}

// SearchAlbums 按关键词搜索专辑，经过熔断器执行
func (c *Client) SearchAlbums(ctx context.Context, query string) ([]domain.Album, error) {
	albums, err := c.breaker.Execute(func() ([]domain.Album, error) {
		return c.search(ctx, query)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExternalProvider, err)
	}
	return albums, nil
}

func (c *Client) search(ctx context.Context, query string) ([]domain.Album, error) {
	token, err := c.accessTokenLocked(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1/search?q=%s&type=album&limit=%d",
		c.baseURL, url.QueryEscape(query), searchLimit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search failed (%d): %s", resp.StatusCode, string(body))
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	return result.Albums.Items, nil
}

// accessTokenLocked 取缓存token，过期时串行刷新
func (c *Client) accessTokenLocked(ctx context.Context) (string, error) {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	auth := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	data := url.Values{}
	data.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL,
		strings.NewReader(data.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to get token (%d): %s", resp.StatusCode, string(body))
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", err
	}

	c.accessToken = token.AccessToken
	// 提前60秒过期，避免临界请求带着失效token出门
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn-60) * time.Second)
	return c.accessToken, nil
}
