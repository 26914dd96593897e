package catalog

import (
	"context"
	"slices"
)

// MemStore serves a fixed product list. It is never mutated after
// construction, so it needs no locking.
type MemStore struct {
	sorted []Product
	byID   map[int]Product
}

// NewMemStore indexes products; a later duplicate id replaces an earlier one.
func NewMemStore(products ...Product) *MemStore {
	s := &MemStore{byID: make(map[int]Product, len(products))}
	for _, p := range products {
		s.byID[p.ID] = p
	}

	s.sorted = make([]Product, 0, len(s.byID))
	for _, p := range s.byID {
		s.sorted = append(s.sorted, p)
	}
	slices.SortFunc(s.sorted, func(a, b Product) int { return a.ID - b.ID })
	return s
}

// NewStore returns the default tee catalog.
func NewStore() *MemStore {
	return NewMemStore(DefaultProducts()...)
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) ListSortedByID(ctx context.Context) ([]Product, error) {
	return slices.Clone(s.sorted), nil
}

func (s *MemStore) Get(ctx context.Context, id int) (Product, bool, error) {
	p, ok := s.byID[id]
	return p, ok, nil
}
