// Package rest provides the HTTP surface of the storefront: catalog queries,
// cart mutations and the notification channel.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/smartkart/storefront/internal/cart"
	"github.com/smartkart/storefront/internal/catalog"
	"github.com/smartkart/storefront/internal/notify"
	"github.com/smartkart/storefront/pkg/web"
)

type Handler struct {
	catalog       catalog.CatalogService
	cart          cart.CartService
	notifications *notify.Channel
	validate      *validator.Validate
	logger        *slog.Logger
}

// NewHandler creates a new storefront API handler.
func NewHandler(catalogSvc catalog.CatalogService, cartSvc cart.CartService, notifications *notify.Channel, logger *slog.Logger) *Handler {
	return &Handler{
		catalog:       catalogSvc,
		cart:          cartSvc,
		notifications: notifications,
		validate:      validator.New(),
		logger:        logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the storefront.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", h.CatalogView)
			r.Get("/{id}", h.FindProduct)
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.Categories)
			r.Get("/overview", h.CategoryOverview)
			r.Get("/{category}/products", h.CategoryProducts)
		})
		r.Get("/deals", h.Deals)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart)
			r.Post("/items", h.AddItem)
			r.Put("/items/{id}", h.UpdateQuantity)
			r.Delete("/items/{id}", h.RemoveItem)
		})

		r.Route("/notification", func(r chi.Router) {
			r.Get("/", h.Notification)
			r.Delete("/", h.DismissNotification)
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// AddItemDto is the request body for adding a product to the cart.
type AddItemDto struct {
	ProductID int64 `json:"product_id" validate:"required,min=1"`
}

// QuantityUpdateDto is the request body for replacing a line's quantity.
// Quantity is a pointer so an explicit zero survives validation.
type QuantityUpdateDto struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// CartDto is the cart as presented to the renderer: the lines in insertion
// order plus the derived totals.
type CartDto struct {
	Items      []cart.Line `json:"items"`
	TotalItems int         `json:"total_items"`
	TotalPrice float64     `json:"total_price"`
}

// CatalogView computes the filtered, sorted product view from the query
// parameters q, category and sort.
func (h *Handler) CatalogView(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	query := catalog.ViewQuery{
		Search:   r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
		Sort:     catalog.ParseSortKey(r.URL.Query().Get("sort")),
	}
	if query.Category == "" {
		query.Category = catalog.AllCategories
	}

	view := h.catalog.View(r.Context(), query)
	mLogger.DebugContext(r.Context(), "Computed catalog view",
		"search", query.Search, "category", query.Category, "sort", query.Sort, "shown", view.Shown)
	web.RespondJSON(w, mLogger, http.StatusOK, view)
}

// FindProduct retrieves a single product by its ID.
func (h *Handler) FindProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	found, err := h.catalog.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %d not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve product with ID %d", id))
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// Categories returns the distinct category values in first-seen order.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	web.RespondJSON(w, mLogger, http.StatusOK, h.catalog.Categories(r.Context()))
}

// CategoryOverview returns per-category counts with a sample product each.
func (h *Handler) CategoryOverview(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	web.RespondJSON(w, mLogger, http.StatusOK, h.catalog.CategoryOverview(r.Context()))
}

// CategoryProducts returns the raw-catalog subsequence for one category.
func (h *Handler) CategoryProducts(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	category := chi.URLParam(r, "category")
	web.RespondJSON(w, mLogger, http.StatusOK, h.catalog.CategoryProducts(r.Context(), category))
}

// Deals returns the discounted subset of the catalog and its summary counts.
func (h *Handler) Deals(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	web.RespondJSON(w, mLogger, http.StatusOK, h.catalog.Deals(r.Context()))
}

// Cart returns the cart lines and derived totals.
func (h *Handler) Cart(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	web.RespondJSON(w, mLogger, http.StatusOK, CartDto{
		Items:      h.cart.Lines(),
		TotalItems: h.cart.TotalItems(),
		TotalPrice: h.cart.TotalPrice(),
	})
}

// AddItem adds one unit of a catalog product to the cart. Out-of-stock
// products are rejected here; the cart engine itself treats stock as
// advisory.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var dto AddItemDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !h.validateDto(w, r, mLogger, dto) {
		return
	}

	product, err := h.catalog.FindByID(r.Context(), dto.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found for cart add", "ID", dto.ProductID)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %d not found", dto.ProductID))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product for cart add", "ID", dto.ProductID, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to add product to cart")
		return
	}
	if product.Stock == 0 {
		mLogger.WarnContext(r.Context(), "Product out of stock", "ID", dto.ProductID)
		web.RespondError(w, mLogger, http.StatusConflict, fmt.Sprintf("Product %q is out of stock", product.Title))
		return
	}

	line := h.cart.Add(*product)
	mLogger.InfoContext(r.Context(), "Product added to cart", "ID", dto.ProductID, "Quantity", line.Quantity)
	web.RespondJSON(w, mLogger, http.StatusCreated, line)
}

// UpdateQuantity replaces the stored quantity for a cart line. A quantity of
// zero removes the line; a negative quantity is rejected.
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var dto QuantityUpdateDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !h.validateDto(w, r, mLogger, dto) {
		return
	}

	if err := h.cart.SetQuantity(id, *dto.Quantity); err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			mLogger.WarnContext(r.Context(), "Invalid quantity for cart line", "ID", id, "Quantity", *dto.Quantity)
			web.RespondError(w, mLogger, http.StatusBadRequest, fmt.Sprintf("Invalid quantity: %d", *dto.Quantity))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error updating cart line quantity", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to update quantity")
		return
	}
	mLogger.InfoContext(r.Context(), "Cart line quantity updated", "ID", id, "Quantity", *dto.Quantity)
	web.RespondJSON(w, mLogger, http.StatusOK, CartDto{
		Items:      h.cart.Lines(),
		TotalItems: h.cart.TotalItems(),
		TotalPrice: h.cart.TotalPrice(),
	})
}

// RemoveItem deletes a cart line. Removing an absent line is a no-op.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	h.cart.Remove(id)
	mLogger.InfoContext(r.Context(), "Cart line removed", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// Notification returns the live notification, or 204 when there is none.
func (h *Handler) Notification(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	current, ok := h.notifications.Current()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, current)
}

// DismissNotification clears the live notification. Idempotent.
func (h *Handler) DismissNotification(w http.ResponseWriter, _ *http.Request) {
	h.notifications.Dismiss()
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// validateDto validates a request DTO and writes the field errors on failure.
func (h *Handler) validateDto(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, dto any) bool {
	err := h.validate.Struct(dto)
	if err == nil {
		return true
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		errorResponse := make(map[string]string)
		for _, fieldErr := range validationErrors {
			errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
		}
		mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
		web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
		return false
	}
	mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
	web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
	return false
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
