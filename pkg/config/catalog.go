package config

import (
	"fmt"
	"net/url"
	"time"
)

// CatalogClientConfig configures the startup fetch of the product catalog
// from the external source.
type CatalogClientConfig struct {
	BaseURL    string        `koanf:"baseUrl"`
	Timeout    time.Duration `koanf:"timeout"`
	Limit      int           `koanf:"limit"`
	RetryCount int           `koanf:"retryCount"`
}

func (c *CatalogClientConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("catalog base URL is not configured")
	}
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return fmt.Errorf("invalid catalog base URL %q: %w", c.BaseURL, err)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid catalog fetch timeout: %v", c.Timeout)
	}
	if c.Limit <= 0 {
		return fmt.Errorf("invalid catalog fetch limit: %d", c.Limit)
	}
	if c.RetryCount < 0 {
		return fmt.Errorf("invalid catalog fetch retry count: %d", c.RetryCount)
	}
	return nil
}
