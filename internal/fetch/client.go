package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"moshpit/internal/config"
	"moshpit/internal/logging"
	"moshpit/internal/webcache"
)

// StatusError reports a non-success HTTP status after retries were exhausted.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

// Response is the outcome of a cached GET.
type Response struct {
	URL         string
	Body        []byte
	Format      webcache.Format
	ContentType string
	StatusCode  int
	FromCache   bool
}

// RequestOptions tune a single request.
type RequestOptions struct {
	// Header is merged into the outbound request (API keys, User-Agent).
	Header http.Header
	// ForceRefresh bypasses the cache lookup but still stores the result.
	ForceRefresh bool
}

// Client performs GETs through the response cache with fixed pacing.
type Client struct {
	httpClient   *http.Client
	cache        *webcache.Cache
	delay        time.Duration
	maxRetries   int
	forceRefresh bool
	sessionID    string
	logger       *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithDelay overrides the pre-request pacing delay.
func WithDelay(delay time.Duration) Option {
	return func(c *Client) {
		if delay >= 0 {
			c.delay = delay
		}
	}
}

// WithForceRefresh makes every request bypass the cache lookup. Responses are
// still stored, so a refreshed run repopulates the cache.
func WithForceRefresh(force bool) Option {
	return func(c *Client) {
		c.forceRefresh = force
	}
}

// New creates a fetch client. A nil cache disables caching entirely.
func New(cache *webcache.Cache, scrape config.Scrape, logger *slog.Logger, opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: time.Duration(scrape.TimeoutSeconds) * time.Second},
		cache:      cache,
		delay:      time.Duration(scrape.RequestDelayMS) * time.Millisecond,
		maxRetries: scrape.MaxRetries,
		sessionID:  uuid.NewString(),
		logger:     logging.NewComponentLogger(logger, "fetch"),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// SessionID identifies this run; it is stamped onto every stored response.
func (c *Client) SessionID() string {
	return c.sessionID
}

// Get returns the cached response for url or fetches and stores it.
func (c *Client) Get(ctx context.Context, url string, opts RequestOptions) (*Response, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("url must not be empty")
	}

	if c.cache != nil && !opts.ForceRefresh && !c.forceRefresh {
		entry, err := c.cache.Lookup(ctx, url)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			return &Response{
				URL:         url,
				Body:        entry.Body,
				Format:      entry.Format,
				ContentType: entry.ContentType,
				StatusCode:  entry.StatusCode,
				FromCache:   true,
			}, nil
		}
	}

	resp, err := c.fetch(ctx, url, opts.Header)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		entry := webcache.Entry{
			URL:         url,
			Body:        resp.Body,
			Format:      resp.Format,
			ContentType: resp.ContentType,
			StatusCode:  resp.StatusCode,
			SessionID:   c.sessionID,
		}
		if err := c.cache.Store(ctx, entry); err != nil {
			// A failed store only costs a refetch next run.
			c.logger.Warn("store response failed", logging.Args(
				logging.String(logging.FieldURL, url),
				logging.Error(err))...)
		}
	}

	return resp, nil
}

// GetJSON fetches url and decodes the body into v.
func (c *Client) GetJSON(ctx context.Context, url string, opts RequestOptions, v any) error {
	resp, err := c.Get(ctx, url, opts)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, url string, header http.Header) (*Response, error) {
	var lastStatus int
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		// Pace every network request; sources throttle aggressively.
		if err := sleepContext(ctx, c.delay); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		for key, values := range header {
			for _, value := range values {
				req.Header.Add(key, value)
			}
		}

		requestStart := time.Now()
		resp, err := c.httpClient.Do(req)
		latency := time.Since(requestStart)
		if err != nil {
			return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable {
			wait := retryAfter(resp, c.delay*time.Duration(attempt+1))
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			lastStatus = resp.StatusCode
			c.logger.Warn("throttled, backing off", logging.Args(
				logging.String(logging.FieldURL, url),
				logging.Int("status", resp.StatusCode),
				logging.Duration("wait", wait))...)
			if err := sleepContext(ctx, wait); err != nil {
				return nil, err
			}
			continue
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read response body: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
		}

		contentType := resp.Header.Get("Content-Type")
		c.logger.Debug("fetched", logging.Args(
			logging.String(logging.FieldURL, url),
			logging.Int("status", resp.StatusCode),
			logging.Duration(logging.FieldLatency, latency))...)

		return &Response{
			URL:         url,
			Body:        body,
			Format:      webcache.DetectFormat(contentType),
			ContentType: contentType,
			StatusCode:  resp.StatusCode,
		}, nil
	}

	return nil, &StatusError{URL: url, StatusCode: lastStatus}
}

func retryAfter(resp *http.Response, fallbackWait time.Duration) time.Duration {
	value := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if value == "" {
		return fallbackWait
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	if when, err := http.ParseTime(value); err == nil {
		if wait := time.Until(when); wait > 0 {
			return wait
		}
	}
	return fallbackWait
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
