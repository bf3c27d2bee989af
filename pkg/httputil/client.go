package httputil

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/stockpulse/platform/pkg/config"
	"github.com/stockpulse/platform/pkg/logger"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// Client is a rate-limited HTTP client with retry logic and logging.
// Each data source owns one Client so budgets never interfere.
type Client struct {
	httpClient    *http.Client
	logger        *logger.Logger
	limiter       *RateLimiter
	maxRetries    int
	backoffFactor float64
	backoffUnit   time.Duration
	userAgent     string
	retries       atomic.Int64

	sleep func(ctx context.Context, d time.Duration) error
}

// StatusError is returned when the upstream answers with a non-2xx status
// that is not worth retrying.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// New creates a Client from a per-source fetch budget.
func New(cfg config.SourceConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger:        log,
		limiter:       NewRateLimiter(cfg.RequestsPerMinute, cfg.MinDelay),
		maxRetries:    cfg.MaxRetries,
		backoffFactor: cfg.BackoffFactor,
		backoffUnit:   time.Second,
		userAgent:     defaultUserAgent,
		sleep:         sleepCtx,
	}
}

// WithUserAgent overrides the User-Agent header sent with every request.
func (c *Client) WithUserAgent(ua string) *Client {
	c.userAgent = ua
	return c
}

// Get performs a rate-limited GET and returns the response. The caller
// owns the body. Retries 429 and 5xx with exponential backoff; any other
// non-2xx status fails immediately with a StatusError.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.retries.Add(1)
		}
		if err := c.limiter.Acquire(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait failed: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create GET request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		duration := time.Since(start)

		if err != nil {
			lastErr = err
			c.logger.WithFields(map[string]interface{}{
				"url":      url,
				"attempt":  attempt + 1,
				"duration": duration,
				"error":    err.Error(),
			}).Warn("HTTP request failed")
			if attempt < c.maxRetries {
				if serr := c.backoff(ctx, attempt, 1); serr != nil {
					return nil, serr
				}
			}
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			c.logger.WithFields(map[string]interface{}{
				"url":         url,
				"status_code": resp.StatusCode,
				"duration":    duration,
			}).Debug("HTTP request completed")
			return resp, nil
		}

		resp.Body.Close()
		lastErr = &StatusError{StatusCode: resp.StatusCode, URL: url}

		if !IsRetryableStatus(resp.StatusCode) {
			return nil, lastErr
		}

		if attempt < c.maxRetries {
			// 429 gets a doubled backoff relative to plain server errors.
			multiplier := 1.0
			if resp.StatusCode == http.StatusTooManyRequests {
				multiplier = 2.0
			}
			c.logger.WithFields(map[string]interface{}{
				"url":         url,
				"status_code": resp.StatusCode,
				"attempt":     attempt + 1,
			}).Warn("Retrying HTTP request")
			if serr := c.backoff(ctx, attempt, multiplier); serr != nil {
				return nil, serr
			}
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// Retries reports the cumulative number of retry attempts the client
// has performed. Callers snapshot it around a request batch to learn
// how many retries that batch cost.
func (c *Client) Retries() int {
	return int(c.retries.Load())
}

// GetBytes performs a GET and returns the full body.
func (c *Client) GetBytes(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	resp, err := c.Get(ctx, url, headers)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

func (c *Client) backoff(ctx context.Context, attempt int, multiplier float64) error {
	d := time.Duration(math.Pow(c.backoffFactor, float64(attempt)) * multiplier * float64(c.backoffUnit))
	return c.sleep(ctx, d)
}

// IsRetryableStatus reports whether a status code should be retried.
func IsRetryableStatus(statusCode int) bool {
	return statusCode >= 500 || statusCode == http.StatusTooManyRequests
}
