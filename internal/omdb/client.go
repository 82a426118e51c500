package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vmunix/reelfind/internal/cache"
)

const defaultBaseURL = "https://www.omdbapi.com"

// Search results change often; detail records barely at all.
const (
	defaultSearchTTL = time.Hour
	defaultDetailTTL = 24 * time.Hour
)

// Client is an OMDB API client with read-through caching.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      cache.Cache
	searchTTL  time.Duration
	detailTTL  time.Duration
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCache replaces the default in-memory cache, e.g. with the
// SQLite-backed one so entries survive restarts.
func WithCache(ca cache.Cache) Option {
	return func(c *Client) {
		c.cache = ca
	}
}

// WithSearchTTL sets the freshness window for search results.
func WithSearchTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.searchTTL = ttl
	}
}

// WithDetailTTL sets the freshness window for detail records.
func WithDetailTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.detailTTL = ttl
	}
}

// WithLogger sets a logger for cache hit/miss debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "omdb")
	}
}

// NewClient creates a new OMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache:     cache.NewMemory(),
		searchTTL: defaultSearchTTL,
		detailTTL: defaultDetailTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// searchKey builds the cache key for a search tuple. Absent filters are
// the empty string, so "year omitted" and "year = empty" share one entry.
func searchKey(term, mediaType, year string) string {
	return "search:" + term + ":" + mediaType + ":" + year
}

func movieKey(imdbID string) string {
	return "movie:" + imdbID
}

// Search queries OMDB for titles matching term. mediaType and year are
// optional filters; pass "" to omit. A fresh cached payload is served
// without a network call.
func (c *Client) Search(ctx context.Context, term, mediaType, year string) (*SearchResponse, error) {
	key := searchKey(term, mediaType, year)

	if data, ok := c.cache.Get(ctx, key); ok {
		var sr SearchResponse
		if err := json.Unmarshal(data, &sr); err == nil {
			if c.log != nil {
				c.log.Debug("cache hit for search", "term", term, "results", len(sr.Search))
			}
			return &sr, nil
		}
		// Undecodable cached payload is treated as a miss
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("s", term)
	if mediaType != "" {
		params.Set("type", mediaType)
	}
	if year != "" {
		params.Set("y", year)
	}

	body, err := c.fetch(ctx, params)
	if err != nil {
		return nil, err
	}

	var sr SearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if sr.Response == "False" {
		return nil, upstreamError(sr.Error)
	}

	c.store(ctx, key, body, c.searchTTL)
	return &sr, nil
}

// GetMovie fetches a full detail record by IMDB ID, with the longer
// detail freshness window.
func (c *Client) GetMovie(ctx context.Context, imdbID string) (*Movie, error) {
	key := movieKey(imdbID)

	if data, ok := c.cache.Get(ctx, key); ok {
		var m Movie
		if err := json.Unmarshal(data, &m); err == nil {
			if c.log != nil {
				c.log.Debug("cache hit for movie", "imdb_id", imdbID, "title", m.Title)
			}
			return &m, nil
		}
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("i", imdbID)
	params.Set("plot", "full")

	body, err := c.fetch(ctx, params)
	if err != nil {
		return nil, err
	}

	var m Movie
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if m.Response == "False" {
		return nil, upstreamError(m.ErrorMsg)
	}

	c.store(ctx, key, body, c.detailTTL)
	return &m, nil
}

// fetch performs the HTTP GET and returns the raw body. Failures map to
// the package error taxonomy; nothing here touches the cache.
func (c *Client) fetch(ctx context.Context, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrInvalidAPIKey
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %s", ErrUnavailable, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}
	return body, nil
}

// store caches a successful raw payload. Cache write failures are logged
// and swallowed; the fetched result is still returned to the caller.
func (c *Client) store(ctx context.Context, key string, body []byte, ttl time.Duration) {
	if err := c.cache.Set(ctx, key, body, ttl); err != nil {
		if c.log != nil {
			c.log.Warn("failed to cache response", "key", key, "error", err)
		}
	}
}

// upstreamError maps OMDB's Response:"False" messages to sentinels.
func upstreamError(msg string) error {
	switch {
	case strings.Contains(msg, "not found"):
		return ErrNotFound
	case strings.Contains(msg, "API key"):
		return ErrInvalidAPIKey
	default:
		return fmt.Errorf("omdb error: %s", msg)
	}
}
