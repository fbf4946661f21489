// Package growi provides the Growi wiki API client and the MCP tool
// wrappers that translate tool calls into API operations.
package growi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/olgasafonova/growi-mcp-server/internal/infra"
	"github.com/olgasafonova/growi-mcp-server/metrics"
	"github.com/olgasafonova/growi-mcp-server/tracing"
	"go.opentelemetry.io/otel/attribute"
)

const (
	// apiPrefix is the fixed REST base path of the Growi v3 API
	apiPrefix = "/_api/v3"

	// DefaultCacheTTL for cached page reads
	DefaultCacheTTL = 5 * time.Minute

	// MaxConcurrentRequests limits parallel API calls
	MaxConcurrentRequests = 5
)

// Client provides access to a Growi wiki with caching, request
// deduplication, circuit breaking, and bounded concurrency.
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     *slog.Logger

	cache          *infra.Cache
	dedup          *infra.RequestDeduplicator
	circuitBreaker *infra.CircuitBreaker
	semaphore      chan struct{}
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return func(client *Client) {
		client.logger = l
	}
}

// WithCache sets a custom cache
func WithCache(c *infra.Cache) ClientOption {
	return func(client *Client) {
		client.cache = c
	}
}

// NewClient creates a new Growi API client
func NewClient(config *Config, opts ...ClientOption) *Client {
	c := &Client{
		config:         config,
		httpClient:     newHTTPClient(config.Timeout),
		logger:         slog.Default(),
		cache:          infra.NewCache(1000),
		dedup:          infra.NewRequestDeduplicator(),
		circuitBreaker: infra.NewCircuitBreaker(),
		semaphore:      make(chan struct{}, MaxConcurrentRequests),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Close releases resources held by the client
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.Close()
	}
}

// resolveToken returns the effective bearer token for a call: the
// call-scoped context token wins over the process-wide configuration.
func (c *Client) resolveToken(ctx context.Context) (string, bool) {
	if token, ok := tokenFromContext(ctx); ok {
		return token, true
	}
	if c.config.HasToken() {
		return c.config.APIToken, true
	}
	return "", false
}

// apiRequest describes one HTTP exchange against the wiki API
type apiRequest struct {
	action string // short name for logging, metrics and tracing
	method string // http.MethodGet or http.MethodPost
	path   string // endpoint below the API prefix, e.g. "/pages/list"
	query  url.Values
	body   []byte // JSON payload for POST requests
	token  string
}

// doRequest performs an HTTP exchange with circuit breaking, bounded
// concurrency, and retries for transient failures (network errors, 5xx,
// 429). It returns the final response body and status code; the caller
// classifies those into an Outcome. Client errors (4xx other than 429)
// are returned immediately without retrying.
func (c *Client) doRequest(ctx context.Context, r apiRequest) ([]byte, int, error) {
	if !c.circuitBreaker.Allow() {
		stats := c.circuitBreaker.Stats()
		return nil, 0, &infra.ErrCircuitOpen{
			State:    stats.State,
			RetryAt:  stats.LastFailure.Add(stats.ResetTimeout),
			Failures: stats.ConsecutiveFails,
		}
	}

	select {
	case c.semaphore <- struct{}{}:
		defer func() { <-c.semaphore }()
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("context canceled while waiting for request slot: %w", ctx.Err())
	}

	ctx, span := tracing.StartSpan(ctx, "growi.api."+r.action)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.request.method", r.method),
		attribute.String("growi.api.path", r.path),
	)

	reqURL := c.config.BaseURL + apiPrefix + r.path
	if len(r.query) > 0 {
		reqURL += "?" + r.query.Encode()
	}

	start := time.Now()
	body, status, err := c.attemptRequest(ctx, r, reqURL)
	duration := time.Since(start).Seconds()

	success := err == nil && status >= 200 && status < 300
	metrics.RecordAPICall(r.action, duration, success, statusCode(status, err))

	if err != nil {
		tracing.RecordError(span, err)
		c.circuitBreaker.RecordFailure()
		return nil, 0, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", status))
	if status >= 500 {
		c.circuitBreaker.RecordFailure()
	} else {
		c.circuitBreaker.RecordSuccess()
	}
	return body, status, nil
}

// attemptRequest runs the retry loop. A fresh request is built per attempt
// because the POST body reader is consumed on send.
func (c *Client) attemptRequest(ctx context.Context, r apiRequest, reqURL string) ([]byte, int, error) {
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			metrics.WikiAPIRetries.WithLabelValues(r.action).Inc()
			backoff := time.Duration(attempt*attempt) * 100 * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, 0, fmt.Errorf("context canceled during backoff: %w", ctx.Err())
			}
		}

		var bodyReader io.Reader
		if r.body != nil {
			bodyReader = bytes.NewReader(r.body)
		}

		req, err := http.NewRequestWithContext(ctx, r.method, reqURL, bodyReader)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.config.UserAgent)
		req.Header.Set("Authorization", "Bearer "+r.token)
		if r.body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			c.logger.Warn("API request failed, retrying",
				"action", r.action,
				"attempt", attempt+1,
				"error", err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			continue
		}

		// Rate limiting: honor Retry-After when present
		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limited (429)")
			if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
				if seconds, parseErr := strconv.Atoi(retryAfter); parseErr == nil {
					select {
					case <-time.After(time.Duration(seconds) * time.Second):
					case <-ctx.Done():
						return nil, 0, ctx.Err()
					}
				}
			}
			continue
		}

		// Server errors are transient: retry while attempts remain, then
		// hand the final response to the caller for classification
		if resp.StatusCode >= 500 && attempt < c.config.MaxRetries {
			lastErr = fmt.Errorf("server error %d: %s", resp.StatusCode, truncate(string(body), 200))
			c.logger.Warn("API returned server error",
				"action", r.action,
				"status", resp.StatusCode,
				"attempt", attempt+1)
			continue
		}

		return body, resp.StatusCode, nil
	}

	return nil, 0, lastErr
}

// statusCode renders a metrics label for a completed exchange
func statusCode(status int, err error) string {
	if err != nil {
		return "transport_error"
	}
	if status >= 200 && status < 300 {
		return ""
	}
	return strconv.Itoa(status)
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// newHTTPClient creates an HTTP client with optimized transport settings
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       120 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		DisableCompression:    false,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
