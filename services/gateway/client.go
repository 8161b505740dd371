// Package gateway is the typed HTTP client for the StreamFlix backend.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"streamflixtv/config"
	"streamflixtv/models"
)

const (
	defaultCatalogPage  = 1
	defaultCatalogLimit = 24
	defaultSearchLimit  = 20
	defaultEpisode      = 1
	maxErrorBody        = 512
)

// Client performs single, unretried GETs against the backend.
type Client struct {
	baseURL   string
	secretKey string
	userAgent string
	httpc     *http.Client
	now       func() time.Time
}

// New builds a client from the api settings. A nil httpc gets one with the
// configured timeout. An empty secret key is logged since the backend will
// reject unsigned requests when it enforces signatures.
func New(settings config.APISettings, httpc *http.Client) *Client {
	if httpc == nil {
		timeout := time.Duration(settings.TimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpc = &http.Client{Timeout: timeout}
	}
	if settings.SecretKey == "" {
		log.Printf("[gateway] no secret key configured (set %s), requests to %s are sent unsigned", config.EnvSecretKey, settings.BaseURL)
	}
	ua := strings.TrimSpace(settings.UserAgent)
	if ua == "" {
		ua = config.DefaultSettings().API.UserAgent
	}
	return &Client{
		baseURL:   strings.TrimRight(strings.TrimSpace(settings.BaseURL), "/"),
		secretKey: settings.SecretKey,
		userAgent: ua,
		httpc:     httpc,
		now:       time.Now,
	}
}

// BaseURL returns the backend root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CatalogQuery selects a catalog page. Zero values take the backend defaults.
type CatalogQuery struct {
	Category string
	Page     int
	Limit    int
	Sort     string
}

func (q CatalogQuery) values() url.Values {
	v := url.Values{}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	page := q.Page
	if page <= 0 {
		page = defaultCatalogPage
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultCatalogLimit
	}
	sort := q.Sort
	if sort == "" {
		sort = SortModified
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("limit", strconv.Itoa(limit))
	v.Set("sort", sort)
	return v
}

// Home fetches the curated landing sections.
func (c *Client) Home(ctx context.Context) (models.CuratedHomeResponse, error) {
	var out models.CuratedHomeResponse
	err := c.get(ctx, "api/rophim/home/curated", nil, &out)
	return out, err
}

// Catalog fetches one page of a category.
func (c *Client) Catalog(ctx context.Context, q CatalogQuery) (models.CatalogResponse, error) {
	var out models.CatalogResponse
	err := c.get(ctx, "api/rophim/catalog", q.values(), &out)
	return out, err
}

// Movie fetches the detail payload of slug.
func (c *Client) Movie(ctx context.Context, slug string) (models.MovieDetailResponse, error) {
	var out models.MovieDetailResponse
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return out, ErrSlugRequired
	}
	err := c.get(ctx, "api/rophim/movie/"+url.PathEscape(slug), nil, &out)
	return out, err
}

// Search looks titles up by keyword. limit <= 0 uses 20.
func (c *Client) Search(ctx context.Context, keyword string, limit int) (models.SearchResponse, error) {
	var out models.SearchResponse
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return out, ErrKeywordRequired
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	v := url.Values{}
	v.Set("q", keyword)
	v.Set("limit", strconv.Itoa(limit))
	err := c.get(ctx, "api/rophim/search", v, &out)
	return out, err
}

// Stream resolves the playable URL of an episode. episode <= 0 uses 1.
func (c *Client) Stream(ctx context.Context, slug string, episode int) (models.StreamResponse, error) {
	var out models.StreamResponse
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return out, ErrSlugRequired
	}
	if episode <= 0 {
		episode = defaultEpisode
	}
	v := url.Values{}
	v.Set("episode", strconv.Itoa(episode))
	err := c.get(ctx, "api/rophim/stream/"+url.PathEscape(slug), v, &out)
	return out, err
}

// Health reports the backend's health payload.
func (c *Client) Health(ctx context.Context) (models.HealthStatus, error) {
	out := models.HealthStatus{}
	err := c.get(ctx, "api/health", nil, &out)
	return out, err
}

func (c *Client) get(ctx context.Context, path string, query url.Values, v any) error {
	endpoint := c.baseURL + "/" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	c.decorate(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", ErrUnavailable, ctxErr)
		}
		log.Printf("[gateway] GET %s failed: %v", path, err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.Printf("[gateway] GET %s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
		return &StatusError{Path: path, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %s: empty body", ErrUnavailable, path)
		}
		log.Printf("[gateway] decode %s: %v", path, err)
		return fmt.Errorf("%w: decode %s: %v", ErrUnavailable, path, err)
	}
	return nil
}

func (c *Client) decorate(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, uuid.NewString())

	if c.secretKey == "" {
		return
	}
	ts := strconv.FormatInt(c.now().Unix(), 10)
	req.Header.Set(headerTimestamp, ts)
	req.Header.Set(headerSignature, Sign(c.secretKey, ts, req.URL.EscapedPath(), req.Method))
}
