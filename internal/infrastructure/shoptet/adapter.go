package shoptet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/domain/shop"
	"github.com/shopsync/backend/internal/domain/taxonomy"
	"go.uber.org/zap"
)

// Adapter implements integration.RemoteCatalogClient against the Shoptet API
type Adapter struct {
	config     *ClientConfig
	tokens     TokenProvider
	httpClient *http.Client
	logger     *zap.Logger
}

// NewAdapter creates a Shoptet adapter with the given configuration
func NewAdapter(config *ClientConfig, tokens TokenProvider, logger *zap.Logger) (*Adapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if tokens == nil {
		tokens = EnvTokenProvider{}
	}
	return &Adapter{
		config:     config,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger.Named("shoptet"),
	}, nil
}

// ListFlags lists the shop's product flags
func (a *Adapter) ListFlags(ctx context.Context, s *shop.Shop) ([]taxonomy.MappableItem, error) {
	body, err := a.doRequest(ctx, s, http.MethodGet, "/api/flags", nil)
	if err != nil {
		return nil, err
	}
	var resp FlagsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: malformed flags payload: %v", integration.ErrPlatformUnavailable, err)
	}
	if resp.HasErrors() {
		return nil, fmt.Errorf("%w: %s", integration.ErrPlatformUnavailable, resp.FirstError())
	}
	return normalizeFlags(resp.Data.Flags), nil
}

// ListFilteringParameters lists the shop's filtering parameters with values
func (a *Adapter) ListFilteringParameters(ctx context.Context, s *shop.Shop) ([]taxonomy.MappableItem, error) {
	body, err := a.doRequest(ctx, s, http.MethodGet, "/api/filtering-parameters", nil)
	if err != nil {
		return nil, err
	}
	var resp FilteringParametersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: malformed filtering parameters payload: %v", integration.ErrPlatformUnavailable, err)
	}
	if resp.HasErrors() {
		return nil, fmt.Errorf("%w: %s", integration.ErrPlatformUnavailable, resp.FirstError())
	}
	return normalizeParameters(resp.Data.FilteringParameters), nil
}

// ListVariantParameters lists the shop's variant parameters with values
func (a *Adapter) ListVariantParameters(ctx context.Context, s *shop.Shop) ([]taxonomy.MappableItem, error) {
	body, err := a.doRequest(ctx, s, http.MethodGet, "/api/variant-parameters", nil)
	if err != nil {
		return nil, err
	}
	var resp VariantParametersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: malformed variant parameters payload: %v", integration.ErrPlatformUnavailable, err)
	}
	if resp.HasErrors() {
		return nil, fmt.Errorf("%w: %s", integration.ErrPlatformUnavailable, resp.FirstError())
	}
	return normalizeParameters(resp.Data.Parameters), nil
}

// ListProducts lists the shop's products as normalized snapshots
func (a *Adapter) ListProducts(ctx context.Context, s *shop.Shop) ([]integration.ProductDetail, error) {
	body, err := a.doRequest(ctx, s, http.MethodGet, "/api/products", nil)
	if err != nil {
		return nil, err
	}
	var resp ProductsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: malformed products payload: %v", integration.ErrPlatformUnavailable, err)
	}
	if resp.HasErrors() {
		return nil, fmt.Errorf("%w: %s", integration.ErrPlatformUnavailable, resp.FirstError())
	}
	return normalizeProducts(resp.Data.Products), nil
}

// UpdateCategory patches a remote category
func (a *Adapter) UpdateCategory(ctx context.Context, s *shop.Shop, remoteCategoryID string, update integration.CategoryUpdate) error {
	if remoteCategoryID == "" {
		return fmt.Errorf("%w: empty remote category id", integration.ErrPlatformUnavailable)
	}
	payload := UpdateCategoryRequest{
		Data: UpdateCategoryData{
			Description:       update.Description,
			SecondDescription: update.SecondDescription,
		},
	}
	_, err := a.doRequest(ctx, s, http.MethodPatch, "/api/categories/"+url.PathEscape(remoteCategoryID), payload)
	return err
}

// SetProductDefaultCategory points a remote product at a remote category
func (a *Adapter) SetProductDefaultCategory(ctx context.Context, s *shop.Shop, productGUID, categoryGUID string) error {
	if productGUID == "" {
		return fmt.Errorf("%w: empty product guid", integration.ErrPlatformUnavailable)
	}
	payload := UpdateProductRequest{
		Data: UpdateProductData{DefaultCategoryGUID: categoryGUID},
	}
	_, err := a.doRequest(ctx, s, http.MethodPatch, "/api/products/"+url.PathEscape(productGUID), payload)
	return err
}

func (a *Adapter) doRequest(ctx context.Context, s *shop.Shop, method, path string, payload any) ([]byte, error) {
	token, err := a.tokens.TokenFor(ctx, s)
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("shoptet: failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.config.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("shoptet: failed to create request: %w", err)
	}
	req.Header.Set("Shoptet-Access-Token", token)
	req.Header.Set("Content-Type", "application/vnd.shoptet.v1.0+json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, a.config.MaxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("shoptet: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		a.logger.Warn("shoptet request failed",
			zap.String("shop", s.Code),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("%w: HTTP %d on %s %s", integration.ErrPlatformUnavailable, resp.StatusCode, method, path)
	}

	return body, nil
}

// Ensure Adapter implements RemoteCatalogClient
var _ integration.RemoteCatalogClient = (*Adapter)(nil)
