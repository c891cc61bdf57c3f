// Package cart implements the shopping cart engine: the mapping from product
// identity to selected quantity, plus the derived totals.
package cart

import (
	"fmt"
	"sync"

	"github.com/smartkart/storefront/internal/catalog"
	"github.com/smartkart/storefront/internal/notify"
)

// Line is one product's quantity entry within the cart. Product is a
// snapshot taken at add time: later catalog price changes do not alter an
// existing line, which keeps totals stable for items already in the cart.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Notifier publishes the outcome of a cart mutation to the user.
type Notifier interface {
	Notify(message string, kind notify.Kind)
}

// CartService defines the cart mutations and derived totals.
//
// Invariants: at most one line per product id, and every stored line has
// quantity >= 1; a transition that would drive a quantity to zero removes
// the line instead. Totals are recomputed from the lines on every call, so
// they cannot drift from the mapping under any interleaving of mutations.
type CartService interface {
	// Add inserts a new line with quantity 1, snapshotting the product, or
	// increments the existing line's quantity. The snapshot is never
	// refreshed on increment; first-add pricing wins for the line's life.
	Add(product catalog.Product) Line

	// Remove deletes the line for the product id. A missing line is a
	// silent no-op and emits no notification.
	Remove(productID int64)

	// SetQuantity replaces the stored quantity for an existing line.
	// Zero is equivalent to Remove; a negative value fails with
	// ErrInvalidQuantity; a missing line is a silent no-op.
	SetQuantity(productID int64, quantity int) error

	// Lines returns the cart lines in insertion order.
	Lines() []Line

	// TotalItems returns the sum of all line quantities.
	TotalItems() int

	// TotalPrice returns the sum of effective price times quantity over all
	// lines, using each line's snapshot product data.
	TotalPrice() float64
}

// Service implements CartService with a mutex-guarded in-memory mapping.
type Service struct {
	notifier Notifier

	mu    sync.Mutex
	lines map[int64]*Line
	// order preserves insertion order for display; no invariant depends on it.
	order []int64
}

// NewService creates an empty cart that reports mutations to the notifier.
func NewService(notifier Notifier) *Service {
	return &Service{
		notifier: notifier,
		lines:    make(map[int64]*Line),
	}
}

// Add inserts a new line for the product or increments the existing one.
func (s *Service) Add(product catalog.Product) Line {
	s.mu.Lock()
	line, ok := s.lines[product.ID]
	if ok {
		line.Quantity++
	} else {
		line = &Line{Product: product, Quantity: 1}
		s.lines[product.ID] = line
		s.order = append(s.order, product.ID)
	}
	result := *line
	s.mu.Unlock()

	// Distinct messages keep the two cases observably different.
	if ok {
		s.notifier.Notify(fmt.Sprintf("Updated %s quantity in cart", product.Title), notify.KindSuccess)
	} else {
		s.notifier.Notify(fmt.Sprintf("%s added to cart!", product.Title), notify.KindSuccess)
	}
	return result
}

// Remove deletes the line for the product id, if present.
func (s *Service) Remove(productID int64) {
	s.mu.Lock()
	line, ok := s.lines[productID]
	if ok {
		s.deleteLocked(productID)
	}
	s.mu.Unlock()

	if ok {
		s.notifier.Notify(fmt.Sprintf("%s removed from cart", line.Product.Title), notify.KindInfo)
	}
}

// SetQuantity replaces the stored quantity for an existing line.
func (s *Service) SetQuantity(productID int64, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("quantity %d for product %d: %w", quantity, productID, ErrInvalidQuantity)
	}
	if quantity == 0 {
		// Zero never leaves a zero-quantity line behind.
		s.Remove(productID)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if line, ok := s.lines[productID]; ok {
		line.Quantity = quantity
	}
	return nil
}

// Lines returns the cart lines in insertion order.
func (s *Service) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]Line, 0, len(s.order))
	for _, id := range s.order {
		lines = append(lines, *s.lines[id])
	}
	return lines
}

// TotalItems returns the sum of all line quantities.
func (s *Service) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice returns the discounted total over all lines, computed fresh
// from the line snapshots.
func (s *Service) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for _, line := range s.lines {
		unit := catalog.EffectivePrice(line.Product.Price, line.Product.DiscountPercentage)
		total += unit * float64(line.Quantity)
	}
	return total
}

// deleteLocked removes the line and its insertion-order entry.
func (s *Service) deleteLocked(productID int64) {
	delete(s.lines, productID)
	for i, id := range s.order {
		if id == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
