package growi

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"
)

// DefaultGrant is the page visibility level sent with every write.
// Growi grant 1 makes the page publicly visible; the value is passed
// through to the API unmodified.
const DefaultGrant = 1

// Config holds Growi connection settings
type Config struct {
	// BaseURL is the wiki root (e.g. https://wiki.example.com).
	// API calls go to BaseURL + "/_api/v3".
	BaseURL string

	// APIToken is the process-wide bearer token used when a call does not
	// carry its own token. Optional; calls without any token get an
	// instructive reply instead of reaching the wiki.
	APIToken string

	// Timeout for API requests
	Timeout time.Duration

	// UserAgent identifies the client to the wiki
	UserAgent string

	// MaxRetries for transient request failures
	MaxRetries int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	baseURL := os.Getenv("GROWI_URL")
	if baseURL == "" {
		return nil, errors.New("GROWI_URL environment variable is required")
	}

	timeout := 30 * time.Second
	if t := os.Getenv("GROWI_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	maxRetries := 3
	if r := os.Getenv("GROWI_MAX_RETRIES"); r != "" {
		if n, err := strconv.Atoi(r); err == nil && n >= 0 {
			maxRetries = n
		}
	}

	userAgent := os.Getenv("GROWI_USER_AGENT")
	if userAgent == "" {
		userAgent = "GrowiMCPServer/1.0 (https://github.com/olgasafonova/growi-mcp-server)"
	}

	return &Config{
		BaseURL:    baseURL,
		APIToken:   os.Getenv("GROWI_API_TOKEN"),
		Timeout:    timeout,
		UserAgent:  userAgent,
		MaxRetries: maxRetries,
	}, nil
}

// HasToken returns true if a process-wide API token is configured
func (c *Config) HasToken() bool {
	return c.APIToken != ""
}

type tokenContextKey struct{}

// WithToken returns a context carrying a call-scoped API token.
// A token attached this way takes precedence over Config.APIToken.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// tokenFromContext extracts a call-scoped token, if any.
func tokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey{}).(string)
	return token, ok && token != ""
}
