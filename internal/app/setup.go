// Package app contains the application setup for the storefront service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartkart/storefront/internal/cart"
	"github.com/smartkart/storefront/internal/catalog"
	"github.com/smartkart/storefront/internal/config"
	"github.com/smartkart/storefront/internal/notify"
	"github.com/smartkart/storefront/internal/transport/rest"
	"github.com/smartkart/storefront/pkg/server"
)

type Dependencies struct {
	CatalogService catalog.CatalogService
	CartService    cart.CartService
	Notifications  *notify.Channel
	Logger         *slog.Logger
}

// SetupDependencies wires the engines together: the catalog service over the
// store, the notification channel, and the cart reporting into it.
func SetupDependencies(store *catalog.Store, cfg *config.Config, logger *slog.Logger) *Dependencies {
	notifications := notify.NewChannel(cfg.Notifications.TTL)

	return &Dependencies{
		CatalogService: catalog.NewService(store),
		CartService:    cart.NewService(notifications),
		Notifications:  notifications,
		Logger:         logger,
	}
}

// SetupHttpHandler initializes the router and routes for the storefront.
// Used by tests to set up the HTTP surface without a listening server.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the storefront.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	handler := rest.NewHandler(deps.CatalogService, deps.CartService, deps.Notifications, deps.Logger)
	handler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures the HTTP server for the storefront.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
