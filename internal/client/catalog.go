// Package client implements the external catalog source collaborator: a
// one-shot fetch of the product list at startup.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"resty.dev/v3"

	"github.com/smartkart/storefront/internal/catalog"
	"github.com/smartkart/storefront/pkg/config"
)

// CatalogClient retrieves the raw product list from the external source.
type CatalogClient interface {
	// FetchProducts fetches the flat, uncategorized product list.
	FetchProducts(ctx context.Context) ([]catalog.Product, error)
}

// productPage is the wire shape of the product source's list response.
type productPage struct {
	Products []catalog.Product `json:"products"`
	Total    int               `json:"total"`
	Skip     int               `json:"skip"`
	Limit    int               `json:"limit"`
}

type catalogClient struct {
	http   *resty.Client
	limit  int
	logger *slog.Logger
}

// NewCatalogClient creates a catalog client for the configured product source.
func NewCatalogClient(cfg config.CatalogClientConfig, logger *slog.Logger) CatalogClient {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(time.Second).
		SetHeader("Accept", "application/json")

	return &catalogClient{
		http:   httpClient,
		limit:  cfg.Limit,
		logger: logger.With("component", "catalog_client"),
	}
}

// FetchProducts fetches the product list from the source.
func (c *catalogClient) FetchProducts(ctx context.Context) ([]catalog.Product, error) {
	var page productPage
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("limit", strconv.Itoa(c.limit)).
		SetResult(&page).
		Get("/products")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product catalog: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("product source responded with HTTP %d", resp.StatusCode())
	}

	c.logger.Info("Catalog fetched", "count", len(page.Products), "total", page.Total)
	return page.Products, nil
}
