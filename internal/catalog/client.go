// Package catalog implements the client for the external product
// catalog service and the id-keyed mapping the enrichment stage joins
// against. The catalog is strictly read-only input: a missing or failing
// service degrades to an empty mapping, never to a pipeline failure.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"salescli/internal/config"
	"salescli/pkg/contracts/domain"
)

// defaultBrand substitutes for catalog entries without a brand field.
const defaultBrand = "Unknown"

// Client fetches product entries from the catalog service.
type Client struct {
	baseURL    string
	limit      int
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a catalog client from configuration. A nil logger
// falls back to the slog default.
func NewClient(cfg config.CatalogConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		limit:   cfg.Limit,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}
}

// productsResponse mirrors the service's list envelope.
type productsResponse struct {
	Products []domain.CatalogProduct `json:"products"`
	Total    int                     `json:"total"`
}

// FetchProducts retrieves all product entries from the catalog service.
// Errors are returned to the caller so it can decide to continue with an
// empty catalog; the returned slice is always non-nil.
func (c *Client) FetchProducts(ctx context.Context) ([]domain.CatalogProduct, error) {
	url := fmt.Sprintf("%s/products?limit=%d", c.baseURL, c.limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return []domain.CatalogProduct{}, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return []domain.CatalogProduct{}, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return []domain.CatalogProduct{}, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var payload productsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return []domain.CatalogProduct{}, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	c.logger.Info("fetched product catalog",
		slog.String("url", url),
		slog.Int("products", len(payload.Products)))

	if payload.Products == nil {
		return []domain.CatalogProduct{}, nil
	}
	return payload.Products, nil
}

// BuildMapping keys catalog entries by the decimal string of their id,
// matching the numeric run extracted from transaction product codes.
// Entries without a brand get the "Unknown" default.
func BuildMapping(products []domain.CatalogProduct) domain.ProductCatalog {
	mapping := make(domain.ProductCatalog, len(products))
	for _, p := range products {
		if p.Brand == "" {
			p.Brand = defaultBrand
		}
		mapping[strconv.FormatInt(p.ID, 10)] = p
	}
	return mapping
}
