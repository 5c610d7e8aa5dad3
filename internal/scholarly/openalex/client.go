package openalex

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/scholarseek/scholar-search-service/internal/domain"
	"github.com/scholarseek/scholar-search-service/internal/scholarly"
)

const (
	// DefaultBaseURL is the default OpenAlex API base URL.
	DefaultBaseURL = "https://api.openalex.org"

	// DefaultRateLimit is the default rate limit for requests per second.
	// OpenAlex polite pool (with email) allows higher rates.
	DefaultRateLimit = 10.0

	// DefaultBurstSize is the default burst size for rate limiting.
	DefaultBurstSize = 10

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 30 * time.Second

	// sourceName is how this catalog is identified in errors and logs.
	sourceName = "OpenAlex"
)

// Config holds configuration for the OpenAlex client.
type Config struct {
	// BaseURL is the OpenAlex API base URL.
	// Defaults to https://api.openalex.org
	BaseURL string

	// Email is the contact email for the polite pool.
	// Providing an email grants access to higher rate limits.
	// See: https://docs.openalex.org/how-to-use-the-api/rate-limits-and-authentication
	Email string

	// Timeout is the request timeout. Defaults to 30 seconds.
	Timeout time.Duration

	// RateLimit is the maximum requests per second. Defaults to 10.
	RateLimit float64

	// BurstSize is the maximum burst of requests allowed. Defaults to 10.
	BurstSize int

	// Enabled indicates whether this source is enabled for searches.
	Enabled bool

	// Recorder, when set, receives upstream request outcomes for metrics.
	Recorder scholarly.RequestRecorder
}

// applyDefaults sets default values for unset configuration fields.
func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RateLimit == 0 {
		c.RateLimit = DefaultRateLimit
	}
	if c.BurstSize == 0 {
		c.BurstSize = DefaultBurstSize
	}
}

// Client implements the scholarly.Source interface for OpenAlex.
type Client struct {
	config     Config
	httpClient *scholarly.HTTPClient
}

// Ensure Client implements the Source interface.
var _ scholarly.Source = (*Client)(nil)

// New creates a new OpenAlex client with the given configuration.
func New(cfg Config) *Client {
	cfg.applyDefaults()

	userAgent := "ScholarSeek-SearchService/1.0"
	if cfg.Email != "" {
		userAgent += " (mailto:" + cfg.Email + ")"
	}

	httpClient := scholarly.NewHTTPClient(scholarly.HTTPClientConfig{
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		BurstSize: cfg.BurstSize,
		UserAgent: userAgent,
		Recorder:  cfg.Recorder,
	})

	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

// NewWithHTTPClient creates a new OpenAlex client with a custom HTTP client.
// This is useful for testing with mock servers.
func NewWithHTTPClient(cfg Config, httpClient *scholarly.HTTPClient) *Client {
	cfg.applyDefaults()

	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

// SearchWorks queries the works collection and renders each result into a
// WorkSummary. Ordering is preserved exactly as returned by the API.
func (c *Client) SearchWorks(ctx context.Context, req domain.SearchRequest) (*domain.Page[domain.WorkSummary], error) {
	body, err := c.get(ctx, "/works", req)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return DecodeWorksPage(body, req)
}

// SearchAuthors queries the authors collection and renders each result into
// an AuthorSummary.
func (c *Client) SearchAuthors(ctx context.Context, req domain.SearchRequest) (*domain.Page[domain.AuthorSummary], error) {
	body, err := c.get(ctx, "/authors", req)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return DecodeAuthorsPage(body, req)
}

// Name returns the human-readable name for this source.
func (c *Client) Name() string {
	return sourceName
}

// IsEnabled returns whether this source is enabled.
func (c *Client) IsEnabled() bool {
	return c.config.Enabled
}

// get executes a search request against the given collection path and
// returns the response body on 200. Non-success status codes become
// ExternalAPIError with a truncated copy of the body.
func (c *Client) get(ctx context.Context, path string, req domain.SearchRequest) (io.ReadCloser, error) {
	searchURL, err := c.buildSearchURL(path, req)
	if err != nil {
		return nil, fmt.Errorf("building search URL: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		resp.Body.Close()
		return nil, domain.NewExternalAPIError(sourceName, resp.StatusCode, string(body), nil)
	}

	return resp.Body, nil
}

// buildSearchURL constructs the search URL for a collection. The parameters
// are fully determined by the request: the search term, the per-page count,
// the 1-indexed page, and the polite-pool mailto when configured.
func (c *Client) buildSearchURL(path string, req domain.SearchRequest) (string, error) {
	baseURL, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}

	baseURL.Path = path

	query := url.Values{}
	query.Set("search", req.Query)
	query.Set("per-page", strconv.Itoa(req.PerPage))
	query.Set("page", strconv.Itoa(req.Page))

	if c.config.Email != "" {
		query.Set("mailto", c.config.Email)
	}

	baseURL.RawQuery = query.Encode()
	return baseURL.String(), nil
}
