package scholarly

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/scholarseek/scholar-search-service/internal/domain"
)

// RequestRecorder observes individual upstream request attempts.
// Implementations must be safe for concurrent use.
type RequestRecorder interface {
	RecordUpstreamRequest()
	RecordUpstreamFailure()
}

// HTTPClientConfig configures the shared HTTP client.
type HTTPClientConfig struct {
	// Timeout is the per-request timeout.
	Timeout time.Duration

	// RateLimit is the maximum requests per second.
	RateLimit float64

	// BurstSize is the maximum burst of requests allowed.
	BurstSize int

	// MaxRetries is the maximum number of retry attempts on 429 and 5xx.
	MaxRetries int

	// RetryDelay is the base delay between retries when the catalog does
	// not send a Retry-After header.
	RetryDelay time.Duration

	// UserAgent is the User-Agent header sent with requests. OpenAlex
	// routes requests carrying a mailto into its polite pool, so include
	// a contact address here.
	UserAgent string

	// Recorder, when set, is notified of every request attempt and every
	// failed attempt, including the retries invisible to callers.
	Recorder RequestRecorder
}

// HTTPClient wraps http.Client with rate limiting and bounded retries.
// It is safe for concurrent use. Only idempotent GET requests pass through
// it; retries therefore never need to replay a request body.
type HTTPClient struct {
	client      *http.Client
	rateLimiter *RateLimiter
	config      HTTPClientConfig
}

// NewHTTPClient creates a new rate-limited HTTP client.
func NewHTTPClient(cfg HTTPClientConfig) *HTTPClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = 10
	}
	if cfg.BurstSize == 0 {
		cfg.BurstSize = 10
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "ScholarSeek-SearchService/1.0"
	}

	return &HTTPClient{
		client:      &http.Client{Timeout: cfg.Timeout},
		rateLimiter: NewRateLimiter(cfg.RateLimit, cfg.BurstSize),
		config:      cfg,
	}
}

// Do executes an HTTP request with rate limiting and retries. It waits for
// the rate limiter before each attempt, sets the User-Agent header, and
// retries on 429 (honoring Retry-After) and on 5xx server errors. Context
// cancellation aborts waiting and is returned unwrapped. Transport failures
// and exhausted 5xx retries wrap domain.ErrServiceUnavailable; exhausted 429
// retries wrap domain.ErrRateLimited.
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if err := c.rateLimiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}
		c.recordRequest()

		resp, err := c.client.Do(req)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			c.recordFailure()
			if attempt < c.config.MaxRetries {
				if werr := c.waitForRetry(req.Context(), c.config.RetryDelay); werr != nil {
					return nil, werr
				}
				continue
			}
			return nil, fmt.Errorf("%w: request failed: %w", domain.ErrServiceUnavailable, err)
		}

		if !c.shouldRetry(resp.StatusCode) {
			return resp, nil
		}
		c.recordFailure()

		retryDelay := c.retryDelay(resp)

		// Drain and close so the connection can be reused.
		if resp.Body != nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		if attempt < c.config.MaxRetries {
			if werr := c.waitForRetry(req.Context(), retryDelay); werr != nil {
				return nil, werr
			}
			continue
		}

		sentinel := domain.ErrServiceUnavailable
		if resp.StatusCode == http.StatusTooManyRequests {
			sentinel = domain.ErrRateLimited
		}
		return nil, fmt.Errorf("%w: max retries exhausted after %d attempts, last status: %d",
			sentinel, c.config.MaxRetries+1, resp.StatusCode)
	}

	return nil, errors.New("unexpected error: no response received")
}

func (c *HTTPClient) recordRequest() {
	if c.config.Recorder != nil {
		c.config.Recorder.RecordUpstreamRequest()
	}
}

func (c *HTTPClient) recordFailure() {
	if c.config.Recorder != nil {
		c.config.Recorder.RecordUpstreamFailure()
	}
}

// shouldRetry reports whether the status code warrants a retry.
func (c *HTTPClient) shouldRetry(statusCode int) bool {
	if statusCode == http.StatusTooManyRequests {
		return true
	}
	return statusCode >= 500 && statusCode < 600
}

// retryDelay determines how long to wait before retrying, honoring the
// Retry-After header (seconds or HTTP date) when present.
func (c *HTTPClient) retryDelay(resp *http.Response) time.Duration {
	retryAfter := resp.Header.Get("Retry-After")
	if retryAfter == "" {
		return c.config.RetryDelay
	}

	if seconds, err := strconv.ParseInt(retryAfter, 10, 64); err == nil {
		if seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
		return c.config.RetryDelay
	}

	if t, err := http.ParseTime(retryAfter); err == nil {
		if delay := time.Until(t); delay > 0 {
			return delay
		}
	}

	return c.config.RetryDelay
}

// waitForRetry sleeps for the given duration, respecting context cancellation.
func (c *HTTPClient) waitForRetry(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
