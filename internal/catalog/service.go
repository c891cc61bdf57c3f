package catalog

import (
	"context"
	"sync"
)

// CatalogService defines the read-side queries over the product catalog.
// Every method derives its result from the current raw catalog; nothing here
// mutates state.
type CatalogService interface {
	// View computes the filtered, sorted product view for the given query.
	View(ctx context.Context, query ViewQuery) ViewDto

	// FindByID retrieves a single product by its identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*Product, error)

	// Categories returns the distinct category values in first-seen order.
	Categories(ctx context.Context) []string

	// CategoryOverview returns per-category product counts with a sample
	// product for each, in first-seen category order.
	CategoryOverview(ctx context.Context) []CategoryOverviewDto

	// CategoryProducts returns the raw-catalog subsequence for one category.
	CategoryProducts(ctx context.Context, category string) []Product

	// Deals returns the discounted subset of the catalog and its summary.
	Deals(ctx context.Context) DealsDto
}

// ViewQuery is the input tuple the view is derived from.
type ViewQuery struct {
	Search   string
	Category string
	Sort     SortKey
}

// ViewDto carries a computed view plus the shown/total counts displayed in
// the results summary line.
type ViewDto struct {
	Products []Product `json:"products"`
	Shown    int       `json:"shown"`
	Total    int       `json:"total"`
}

// CategoryOverviewDto describes one category tile: its product count and a
// sample product (the first one in catalog order).
type CategoryOverviewDto struct {
	Category string   `json:"category"`
	Count    int      `json:"count"`
	Sample   *Product `json:"sample,omitempty"`
}

// DealsDto carries the deals subset and its partition counts.
type DealsDto struct {
	Products []Product   `json:"products"`
	Summary  DealSummary `json:"summary"`
}

// Service implements CatalogService on top of a Store. The last computed
// view is memoized per (generation, query) tuple; the cache is an
// optimization only, a miss recomputes from scratch with the same result.
type Service struct {
	store *Store

	mu       sync.Mutex
	memoGen  uint64
	memoKey  ViewQuery
	memoView *ViewDto
}

// NewService creates a new catalog service backed by the given store.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// View computes the filtered, sorted product view for the given query.
func (s *Service) View(_ context.Context, query ViewQuery) ViewDto {
	products, gen := s.store.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.memoView != nil && s.memoGen == gen && s.memoKey == query {
		return *s.memoView
	}

	view := ViewDto{
		Products: ComputeView(products, query.Search, query.Category, query.Sort),
		Total:    len(products),
	}
	view.Shown = len(view.Products)

	s.memoGen = gen
	s.memoKey = query
	s.memoView = &view
	return view
}

// FindByID retrieves a single product by its identifier.
func (s *Service) FindByID(_ context.Context, id int64) (*Product, error) {
	return s.store.FindByID(id)
}

// Categories returns the distinct category values in first-seen order.
func (s *Service) Categories(_ context.Context) []string {
	return DistinctCategories(s.store.All())
}

// CategoryOverview returns per-category product counts with a sample product.
func (s *Service) CategoryOverview(_ context.Context) []CategoryOverviewDto {
	products := s.store.All()
	overview := make([]CategoryOverviewDto, 0)
	for _, category := range DistinctCategories(products) {
		matched := ProductsByCategory(products, category)
		dto := CategoryOverviewDto{Category: category, Count: len(matched)}
		if len(matched) > 0 {
			sample := matched[0]
			dto.Sample = &sample
		}
		overview = append(overview, dto)
	}
	return overview
}

// CategoryProducts returns the raw-catalog subsequence for one category.
func (s *Service) CategoryProducts(_ context.Context, category string) []Product {
	return ProductsByCategory(s.store.All(), category)
}

// Deals returns the discounted subset of the catalog and its summary.
func (s *Service) Deals(_ context.Context) DealsDto {
	deals := DealProducts(s.store.All(), DefaultMinDealDiscount)
	return DealsDto{Products: deals, Summary: SummarizeDeals(deals)}
}
