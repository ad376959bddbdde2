package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	domainErrors "github.com/dahorta/freshmarket/internal/domain/errors"
	"github.com/dahorta/freshmarket/internal/domain/model"
)

// Filter narrows a catalog listing.
type Filter struct {
	Category  string
	PromoOnly bool
	Search    string
}

// Client exposes operations against the product catalog service. The catalog
// owns product data; this service only reads it and reports stock deltas.
type Client interface {
	Product(ctx context.Context, id string) (*model.Product, error)
	Products(ctx context.Context, filter Filter) ([]model.Product, error)
	AdjustStock(ctx context.Context, productID string, delta float64) error
}

// HTTPClient implements Client via HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates HTTP catalog client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("catalog url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Product fetches one product by id.
func (c *HTTPClient) Product(ctx context.Context, id string) (*model.Product, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/products/", id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var product model.Product
		if err := json.Unmarshal(body, &product); err != nil {
			return nil, err
		}
		return &product, nil
	case http.StatusNotFound:
		return nil, domainErrors.ErrNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("catalog request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("catalog error: %s", resp.Status)
	}
}

// Products lists catalog products matching the filter.
func (c *HTTPClient) Products(ctx context.Context, filter Filter) ([]model.Product, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/products")

	query := endpoint.Query()
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.PromoOnly {
		query.Set("promo", "true")
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("catalog request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("catalog error: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var products []model.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// AdjustStock reports a stock delta for a product. Negative delta reserves
// stock for a submitted order.
func (c *HTTPClient) AdjustStock(ctx context.Context, productID string, delta float64) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/products/", productID, "/stock")

	payload, err := json.Marshal(map[string]float64{"delta": delta})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// The catalog allows stock to go negative; surface oversell so
		// operators can restock or refund.
		var result struct {
			Stock float64 `json:"stock"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err == nil && result.Stock < 0 {
			c.logger.Warn("product oversold",
				slog.String("product", productID),
				slog.Float64("stock", result.Stock))
		}
		return nil
	case http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return domainErrors.ErrNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("stock adjustment failed",
			slog.String("product", productID),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)))
		return fmt.Errorf("catalog error: %s", resp.Status)
	}
}
