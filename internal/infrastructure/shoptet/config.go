package shoptet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/domain/shop"
)

// ClientConfig holds configuration for the Shoptet API client
type ClientConfig struct {
	// BaseURL is the Shoptet API endpoint
	BaseURL string
	// Timeout is the HTTP request timeout
	Timeout time.Duration
	// MaxResponseBytes caps how much of a response body is read
	MaxResponseBytes int64
}

// Errors for Shoptet configuration
var (
	ErrConfigMissingBaseURL = errors.New("shoptet: base URL is required")
)

// NewClientConfig creates a client configuration with defaults
func NewClientConfig(baseURL string) *ClientConfig {
	return &ClientConfig{
		BaseURL:          baseURL,
		Timeout:          30 * time.Second,
		MaxResponseBytes: 20 * 1024 * 1024,
	}
}

// Validate checks the configuration
func (c *ClientConfig) Validate() error {
	if c.BaseURL == "" {
		return ErrConfigMissingBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.MaxResponseBytes <= 0 {
		c.MaxResponseBytes = 20 * 1024 * 1024
	}
	return nil
}

// TokenProvider resolves the API access token for a shop. The shop record
// only carries a credential reference, never the token itself.
type TokenProvider interface {
	TokenFor(ctx context.Context, s *shop.Shop) (string, error)
}

// EnvTokenProvider resolves tokens from environment variables named by the
// shop's APITokenRef.
type EnvTokenProvider struct{}

// TokenFor returns the token for the shop or ErrPlatformNotConfigured
func (EnvTokenProvider) TokenFor(_ context.Context, s *shop.Shop) (string, error) {
	if s.APITokenRef == "" {
		return "", fmt.Errorf("%w: shop %s has no credential reference", integration.ErrPlatformNotConfigured, s.Code)
	}
	token := os.Getenv(s.APITokenRef)
	if token == "" {
		return "", fmt.Errorf("%w: env %s is empty for shop %s", integration.ErrPlatformNotConfigured, s.APITokenRef, s.Code)
	}
	return token, nil
}

// StaticTokenProvider returns one fixed token for every shop, used in tests.
type StaticTokenProvider struct {
	Token string
}

// TokenFor returns the static token
func (p StaticTokenProvider) TokenFor(_ context.Context, s *shop.Shop) (string, error) {
	if p.Token == "" {
		return "", fmt.Errorf("%w: no token configured", integration.ErrPlatformNotConfigured)
	}
	return p.Token, nil
}
