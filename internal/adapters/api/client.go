package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/vfrplanner-go/internal/adapters/metrics"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultMaxRetries  = 2
	defaultBackoffBase = time.Second
	defaultMaxFailures = 5
	defaultOpenTimeout = time.Minute

	// maxRetryAfter caps a server supplied Retry-After
	maxRetryAfter = 30 * time.Second

	// maxBodyBytes bounds upstream responses; FD bulletins are ~30 KB
	maxBodyBytes = 4 << 20
)

// ClientConfig configures an upstream data service client
type ClientConfig struct {
	// Name labels metrics and errors, e.g. "aviationweather"
	Name    string
	BaseURL string
	Timeout time.Duration

	RequestsPerSecond float64
	Burst             int

	MaxRetries  int
	BackoffBase time.Duration

	MaxFailures int
	OpenTimeout time.Duration

	// Optional; defaults to the real clock and a client with Timeout
	Clock      shared.Clock
	HTTPClient *http.Client
}

// Client performs rate limited GET requests against one upstream service,
// retrying transient failures with exponential backoff behind a circuit
// breaker
type Client struct {
	name        string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	maxRetries  int
	backoffBase time.Duration
	clock       shared.Clock
	breaker     *CircuitBreaker
}

// NewClient creates an upstream client, filling zero values with defaults
func NewClient(cfg ClientConfig) *Client {
	if cfg.Clock == nil {
		cfg.Clock = shared.NewRealClock()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 2
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = defaultBackoffBase
	}
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = defaultMaxFailures
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaultOpenTimeout
	}

	return &Client{
		name:        cfg.Name,
		httpClient:  cfg.HTTPClient,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		maxRetries:  cfg.MaxRetries,
		backoffBase: cfg.BackoffBase,
		clock:       cfg.Clock,
		breaker:     NewCircuitBreaker(cfg.Name, cfg.MaxFailures, cfg.OpenTimeout, cfg.Clock),
	}
}

// Name returns the service label
func (c *Client) Name() string {
	return c.name
}

// Breaker exposes the provider's circuit breaker
func (c *Client) Breaker() *CircuitBreaker {
	return c.breaker
}

// StatusError is a non-retryable HTTP error response
type StatusError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s error (status %d): %s", e.Service, e.StatusCode, e.Body)
}

// retryableError represents an error that should trigger a retry
type retryableError struct {
	message    string
	retryAfter time.Duration
}

func (e *retryableError) Error() string {
	return e.message
}

// Get fetches path with query and returns the response body
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := strings.Trim(path, "/")
	target := c.baseURL + "/" + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body []byte
	err := c.breaker.Do(func() error {
		var err error
		body, err = c.getWithRetries(ctx, endpoint, target)
		return err
	}, countsAsFailure)
	if errors.Is(err, ErrCircuitOpen) {
		return nil, fmt.Errorf("%s unavailable: %w", c.name, err)
	}
	return body, err
}

// countsAsFailure keeps client errors and cancellations from opening the
// circuit
func countsAsFailure(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return false
	}
	return !errors.Is(err, context.Canceled)
}

func (c *Client) getWithRetries(ctx context.Context, endpoint, target string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Check for context cancellation before sleeping
			if ctx.Err() != nil {
				return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
			}
			reason := lastErr.Error()
			delay := addJitter(c.backoffBase * time.Duration(1<<(attempt-1)))
			var re *retryableError
			if errors.As(lastErr, &re) && re.retryAfter > 0 {
				delay = min(re.retryAfter, maxRetryAfter)
			}
			metrics.RecordProviderRetry(c.name, endpoint, reason)
			if err := c.clock.Sleep(ctx, delay); err != nil {
				return nil, fmt.Errorf("context cancelled: %w", err)
			}
		}

		waitStart := time.Now()
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}
		metrics.RecordRateLimitWait(c.name, endpoint, time.Since(waitStart).Seconds())

		body, err := c.do(ctx, endpoint, target)
		if err == nil {
			return body, nil
		}
		var re *retryableError
		if !errors.As(err, &re) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%s: max retries exceeded: %w", c.name, lastErr)
}

func (c *Client) do(ctx context.Context, endpoint, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "vfrplanner/1.0")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
		}
		return nil, &retryableError{message: fmt.Sprintf("network error: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	metrics.RecordProviderRequest(c.name, endpoint, resp.StatusCode, time.Since(start).Seconds())
	if err != nil {
		return nil, &retryableError{message: fmt.Sprintf("failed to read response: %v", err)}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		var retryAfter time.Duration
		if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
			retryAfter = time.Duration(seconds) * time.Second
		}
		return nil, &retryableError{message: "rate limited (429)", retryAfter: retryAfter}
	case resp.StatusCode >= 500:
		return nil, &retryableError{message: fmt.Sprintf("server error (%d)", resp.StatusCode)}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &StatusError{Service: c.name, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	return body, nil
}

// addJitter returns a duration between 50% and 150% of d
func addJitter(d time.Duration) time.Duration {
	jitter := 0.5 + rand.Float64()
	return time.Duration(float64(d) * jitter)
}
