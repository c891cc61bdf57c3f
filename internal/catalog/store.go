package catalog

import "sync"

// Store holds the raw product list received from the external source.
// The list is replaced wholesale and read-only afterwards; the generation
// counter lets derived-state caches detect a replacement.
type Store struct {
	mu       sync.RWMutex
	products []Product
	gen      uint64
}

// NewStore creates an empty catalog store.
func NewStore() *Store {
	return &Store{}
}

// Replace swaps in a new product list and bumps the generation counter.
func (s *Store) Replace(products []Product) {
	copied := make([]Product, len(products))
	copy(copied, products)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = copied
	s.gen++
}

// Snapshot returns a copy of the current product list together with the
// generation it belongs to.
func (s *Store) Snapshot() ([]Product, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]Product, len(s.products))
	copy(copied, s.products)
	return copied, s.gen
}

// All returns a copy of the current product list.
func (s *Store) All() []Product {
	products, _ := s.Snapshot()
	return products
}

// FindByID retrieves a product by its ID.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Store) FindByID(id int64) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, ErrProductNotFound
}

// Len returns the number of products currently in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}
