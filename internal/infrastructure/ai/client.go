package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/domain/taxonomy"
	"go.uber.org/zap"
)

const maxResponseSize = 10 * 1024 * 1024

// ClientConfig holds configuration for the suggestion backend client
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client implements integration.SuggestionOracle over HTTP. It never
// persists anything; callers decide what to do with the proposals.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a suggestion backend client
func NewClient(config ClientConfig, logger *zap.Logger) *Client {
	if config.Timeout <= 0 {
		config.Timeout = 60 * time.Second
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger.Named("suggestions"),
	}
}

type categorySuggestRequest struct {
	MasterShopID  string                           `json:"master_shop_id"`
	TargetShopID  string                           `json:"target_shop_id"`
	IncludeMapped bool                             `json:"include_mapped"`
	Instructions  string                           `json:"instructions,omitempty"`
	Canonical     []integration.CategoryDescriptor `json:"canonical"`
	ShopNodes     []integration.CategoryDescriptor `json:"shop_nodes"`
}

type categorySuggestResponse struct {
	Suggestions []integration.CategorySuggestion `json:"suggestions"`
}

// SuggestCategoryMappings asks the backend for category pairings
func (c *Client) SuggestCategoryMappings(ctx context.Context, req integration.CategorySuggestionRequest) ([]integration.CategorySuggestion, error) {
	payload := categorySuggestRequest{
		MasterShopID:  req.MasterShopID.String(),
		TargetShopID:  req.TargetShopID.String(),
		IncludeMapped: req.IncludeMapped,
		Instructions:  req.Instructions,
		Canonical:     req.Canonical,
		ShopNodes:     req.ShopNodes,
	}
	var resp categorySuggestResponse
	if err := c.post(ctx, "/v1/suggest/categories", payload, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

type attributeSuggestRequest struct {
	MasterItems []taxonomy.MappableItem `json:"master_items"`
	TargetItems []taxonomy.MappableItem `json:"target_items"`
}

type attributeSuggestResponse struct {
	Pairings []integration.AttributePairing `json:"pairings"`
}

// SuggestAttributeMappings asks the backend for attribute pairings
func (c *Client) SuggestAttributeMappings(ctx context.Context, master, target []taxonomy.MappableItem) ([]integration.AttributePairing, error) {
	payload := attributeSuggestRequest{MasterItems: master, TargetItems: target}
	var resp attributeSuggestResponse
	if err := c.post(ctx, "/v1/suggest/attributes", payload, &resp); err != nil {
		return nil, err
	}
	return resp.Pairings, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	// Credentials are checked before any network I/O
	if c.config.APIKey == "" {
		return fmt.Errorf("%w: api key is not set", integration.ErrOracleNotConfigured)
	}
	if c.config.BaseURL == "" {
		return fmt.Errorf("%w: base url is not set", integration.ErrOracleNotConfigured)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("suggestions: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("suggestions: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", integration.ErrOracleUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("suggestions: failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		c.logger.Warn("suggestion request failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%w: HTTP %d on %s", integration.ErrOracleUnavailable, resp.StatusCode, path)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: malformed response: %v", integration.ErrOracleUnavailable, err)
	}
	return nil
}

// Ensure Client implements SuggestionOracle
var _ integration.SuggestionOracle = (*Client)(nil)
