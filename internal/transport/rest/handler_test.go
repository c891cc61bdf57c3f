package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartkart/storefront/internal/cart"
	"github.com/smartkart/storefront/internal/catalog"
	"github.com/smartkart/storefront/internal/notify"
)

// mockCatalogService is a mock implementation of the CatalogService interface
type mockCatalogService struct {
	view       catalog.ViewDto
	product    *catalog.Product
	categories []string
	overview   []catalog.CategoryOverviewDto
	deals      catalog.DealsDto
	error      error
}

func (m *mockCatalogService) View(_ context.Context, _ catalog.ViewQuery) catalog.ViewDto {
	return m.view
}

func (m *mockCatalogService) FindByID(_ context.Context, _ int64) (*catalog.Product, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockCatalogService) Categories(_ context.Context) []string {
	return m.categories
}

func (m *mockCatalogService) CategoryOverview(_ context.Context) []catalog.CategoryOverviewDto {
	return m.overview
}

func (m *mockCatalogService) CategoryProducts(_ context.Context, _ string) []catalog.Product {
	return m.view.Products
}

func (m *mockCatalogService) Deals(_ context.Context) catalog.DealsDto {
	return m.deals
}

// mockCartService is a mock implementation of the CartService interface
type mockCartService struct {
	lines      []cart.Line
	totalItems int
	totalPrice float64
	error      error

	added      []catalog.Product
	removed    []int64
	quantities map[int64]int
}

func (m *mockCartService) Add(product catalog.Product) cart.Line {
	m.added = append(m.added, product)
	return cart.Line{Product: product, Quantity: 1}
}

func (m *mockCartService) Remove(productID int64) {
	m.removed = append(m.removed, productID)
}

func (m *mockCartService) SetQuantity(productID int64, quantity int) error {
	if m.error != nil {
		return m.error
	}
	if m.quantities == nil {
		m.quantities = make(map[int64]int)
	}
	m.quantities[productID] = quantity
	return nil
}

func (m *mockCartService) Lines() []cart.Line  { return m.lines }
func (m *mockCartService) TotalItems() int     { return m.totalItems }
func (m *mockCartService) TotalPrice() float64 { return m.totalPrice }

func newTestHandler(catalogSvc catalog.CatalogService, cartSvc cart.CartService) (*chi.Mux, *notify.Channel) {
	notifications := notify.NewChannel(time.Minute)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(catalogSvc, cartSvc, notifications, logger)
	mux := chi.NewRouter()
	handler.RegisterRoutes(mux)
	return mux, notifications
}

func Test_CatalogView(t *testing.T) {
	// given
	mockCatalog := &mockCatalogService{
		view: catalog.ViewDto{
			Products: []catalog.Product{{ID: 1, Title: "Desk Lamp"}},
			Shown:    1,
			Total:    4,
		},
	}
	mux, _ := newTestHandler(mockCatalog, &mockCartService{})

	// when
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog?q=lamp&sort=price-asc", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	// then
	assert.Equal(t, http.StatusOK, rec.Code)
	var view catalog.ViewDto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 1, view.Shown)
	assert.Equal(t, 4, view.Total)
	require.Len(t, view.Products, 1)
	assert.Equal(t, "Desk Lamp", view.Products[0].Title)
}

func Test_FindProduct(t *testing.T) {
	testCases := []struct {
		name         string
		mockCatalog  *mockCatalogService
		path         string
		expectedCode int
	}{
		{
			name:         "Success - product found",
			mockCatalog:  &mockCatalogService{product: &catalog.Product{ID: 7, Title: "Office Chair"}},
			path:         "/api/v1/catalog/7",
			expectedCode: http.StatusOK,
		},
		{
			name:         "Error - product not found",
			mockCatalog:  &mockCatalogService{error: catalog.ErrProductNotFound},
			path:         "/api/v1/catalog/7",
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "Error - invalid ID",
			mockCatalog:  &mockCatalogService{},
			path:         "/api/v1/catalog/not-a-number",
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mux, _ := newTestHandler(tc.mockCatalog, &mockCartService{})
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			assert.Equal(t, tc.expectedCode, rec.Code)
		})
	}
}

func Test_Categories(t *testing.T) {
	mockCatalog := &mockCatalogService{categories: []string{"beauty", "furniture"}}
	mux, _ := newTestHandler(mockCatalog, &mockCartService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["beauty","furniture"]`, rec.Body.String())
}

func Test_Deals(t *testing.T) {
	mockCatalog := &mockCatalogService{
		deals: catalog.DealsDto{
			Products: []catalog.Product{{ID: 2, DiscountPercentage: 35}},
			Summary:  catalog.DealSummary{Total: 1, MegaDiscount: 1},
		},
	}
	mux, _ := newTestHandler(mockCatalog, &mockCartService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/deals", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var deals catalog.DealsDto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deals))
	assert.Equal(t, 1, deals.Summary.MegaDiscount)
}

func Test_AddItem(t *testing.T) {
	testCases := []struct {
		name         string
		mockCatalog  *mockCatalogService
		body         string
		expectedCode int
		expectAdded  int
	}{
		{
			name:         "Success - product added",
			mockCatalog:  &mockCatalogService{product: &catalog.Product{ID: 1, Title: "Desk Lamp", Stock: 5}},
			body:         `{"product_id": 1}`,
			expectedCode: http.StatusCreated,
			expectAdded:  1,
		},
		{
			name:         "Error - product not found",
			mockCatalog:  &mockCatalogService{error: catalog.ErrProductNotFound},
			body:         `{"product_id": 99}`,
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "Error - out of stock",
			mockCatalog:  &mockCatalogService{product: &catalog.Product{ID: 1, Title: "Desk Lamp", Stock: 0}},
			body:         `{"product_id": 1}`,
			expectedCode: http.StatusConflict,
		},
		{
			name:         "Error - missing product id",
			mockCatalog:  &mockCatalogService{},
			body:         `{}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - malformed body",
			mockCatalog:  &mockCatalogService{},
			body:         `{"product_id":`,
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mockCart := &mockCartService{}
			mux, _ := newTestHandler(tc.mockCatalog, mockCart)
			// when
			req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			// then
			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.Len(t, mockCart.added, tc.expectAdded)
		})
	}
}

func Test_UpdateQuantity(t *testing.T) {
	testCases := []struct {
		name         string
		mockCart     *mockCartService
		body         string
		expectedCode int
	}{
		{
			name:         "Success - quantity replaced",
			mockCart:     &mockCartService{},
			body:         `{"quantity": 3}`,
			expectedCode: http.StatusOK,
		},
		{
			name:         "Success - zero removes the line",
			mockCart:     &mockCartService{},
			body:         `{"quantity": 0}`,
			expectedCode: http.StatusOK,
		},
		{
			name:         "Error - negative quantity",
			mockCart:     &mockCartService{error: cart.ErrInvalidQuantity},
			body:         `{"quantity": -1}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - missing quantity",
			mockCart:     &mockCartService{},
			body:         `{}`,
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mux, _ := newTestHandler(&mockCatalogService{}, tc.mockCart)
			req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/items/1", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			assert.Equal(t, tc.expectedCode, rec.Code)
		})
	}
}

func Test_RemoveItem(t *testing.T) {
	mockCart := &mockCartService{}
	mux, _ := newTestHandler(&mockCatalogService{}, mockCart)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/5", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []int64{5}, mockCart.removed)
}

func Test_Cart(t *testing.T) {
	mockCart := &mockCartService{
		lines:      []cart.Line{{Product: catalog.Product{ID: 1, Title: "Desk Lamp"}, Quantity: 2}},
		totalItems: 2,
		totalPrice: 100,
	}
	mux, _ := newTestHandler(&mockCatalogService{}, mockCart)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var dto CartDto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, 2, dto.TotalItems)
	assert.InDelta(t, 100.0, dto.TotalPrice, 1e-9)
	require.Len(t, dto.Items, 1)
	assert.Equal(t, 2, dto.Items[0].Quantity)
}

func Test_Notification_Lifecycle(t *testing.T) {
	mux, notifications := newTestHandler(&mockCatalogService{}, &mockCartService{})

	// empty channel
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notification", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// live notification
	notifications.Notify("Desk Lamp added to cart!", notify.KindSuccess)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/notification", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	var current notify.Notification
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &current))
	assert.Equal(t, notify.KindSuccess, current.Kind)

	// dismiss clears it
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/notification", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	_, ok := notifications.Current()
	assert.False(t, ok)
}

func Test_HealthCheck(t *testing.T) {
	mux, _ := newTestHandler(&mockCatalogService{}, &mockCartService{})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
