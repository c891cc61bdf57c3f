package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering of a computed catalog view.
type SortKey string

const (
	SortDefault    SortKey = "default"
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortRatingDesc SortKey = "rating-desc"
	SortNameAsc    SortKey = "name-asc"
)

// AllCategories is the sentinel category meaning "do not filter by category".
const AllCategories = "all"

// ParseSortKey maps a raw sort parameter to a SortKey. Unknown values fall
// back to SortDefault, matching how the UI treats an unrecognized option.
func ParseSortKey(raw string) SortKey {
	switch SortKey(raw) {
	case SortPriceAsc, SortPriceDesc, SortRatingDesc, SortNameAsc:
		return SortKey(raw)
	default:
		return SortDefault
	}
}

// ComputeView derives the visible product list from the raw catalog, the
// search term, the category filter and the sort key. It is a pure function:
// the input slice is never mutated and identical inputs yield identical
// output.
//
// A product survives the filter stage if the case-folded search term is a
// substring of its title, brand or category (OR across the three fields;
// an empty term matches everything), and, when the category is not the
// AllCategories sentinel, its category equals the filter exactly. The sort
// stage is stable, so ties keep the filter stage's relative order and
// SortDefault preserves raw catalog order.
func ComputeView(products []Product, searchTerm, category string, sort SortKey) []Product {
	view := make([]Product, 0, len(products))
	term := strings.ToLower(searchTerm)
	for _, p := range products {
		if term != "" && !matchesTerm(p, term) {
			continue
		}
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		view = append(view, p)
	}

	switch sort {
	case SortPriceAsc:
		slices.SortStableFunc(view, func(a, b Product) int {
			return compareFloat(a.Price, b.Price)
		})
	case SortPriceDesc:
		slices.SortStableFunc(view, func(a, b Product) int {
			return compareFloat(b.Price, a.Price)
		})
	case SortRatingDesc:
		slices.SortStableFunc(view, func(a, b Product) int {
			return compareFloat(b.Rating, a.Rating)
		})
	case SortNameAsc:
		coll := collate.New(language.English)
		slices.SortStableFunc(view, func(a, b Product) int {
			return coll.CompareString(a.Title, b.Title)
		})
	}
	return view
}

// matchesTerm reports whether the already lower-cased term occurs in the
// product's title, brand or category. Absent fields behave as empty strings.
func matchesTerm(p Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Brand), term) ||
		strings.Contains(strings.ToLower(p.Category), term)
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// DistinctCategories returns the category values present in the catalog,
// in first-seen order.
func DistinctCategories(products []Product) []string {
	seen := make(map[string]struct{}, len(products))
	categories := make([]string, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}

// ProductsByCategory returns the subsequence of the raw catalog whose
// category matches exactly, independent of search and sort state.
func ProductsByCategory(products []Product, category string) []Product {
	matched := make([]Product, 0)
	for _, p := range products {
		if p.Category == category {
			matched = append(matched, p)
		}
	}
	return matched
}

// DefaultMinDealDiscount is the discount percentage at which a product
// counts as a deal.
const DefaultMinDealDiscount = 20

// Thresholds for the deal summary partitions.
const (
	megaDiscountMin = 30
	topRatedMin     = 4.5
	limitedStockMax = 10
)

// DealProducts returns the subsequence of the catalog whose discount
// percentage is at least minDiscount.
func DealProducts(products []Product, minDiscount float64) []Product {
	deals := make([]Product, 0)
	for _, p := range products {
		if p.DiscountPercentage >= minDiscount {
			deals = append(deals, p)
		}
	}
	return deals
}

// DealSummary holds predicate counts over a deals subset, backing the deals
// page header cards.
type DealSummary struct {
	Total        int `json:"total"`
	MegaDiscount int `json:"mega_discount"`
	TopRated     int `json:"top_rated"`
	LimitedStock int `json:"limited_stock"`
}

// SummarizeDeals counts the deals partitions: discount >= 30, rating >= 4.5
// and stock <= 10.
func SummarizeDeals(deals []Product) DealSummary {
	summary := DealSummary{Total: len(deals)}
	for _, p := range deals {
		if p.DiscountPercentage >= megaDiscountMin {
			summary.MegaDiscount++
		}
		if p.Rating >= topRatedMin {
			summary.TopRated++
		}
		if p.Stock <= limitedStockMax {
			summary.LimitedStock++
		}
	}
	return summary
}
