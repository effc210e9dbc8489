// Package memstore keeps pantry items in process memory.
package memstore

import (
	"context"
	"sync"

	"pantryservice/internal/inventory"
)

type Store struct {
	mu    sync.Mutex
	items map[string]float64
}

func New() *Store {
	return &Store{items: make(map[string]float64)}
}

func (s *Store) List(ctx context.Context) ([]inventory.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, inventory.Unavailable("list", "", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]inventory.Item, 0, len(s.items))
	for name, qty := range s.items {
		items = append(items, inventory.Item{Name: name, Quantity: qty})
	}
	return items, nil
}

func (s *Store) Increment(ctx context.Context, name string, amount float64) error {
	if err := ctx.Err(); err != nil {
		return inventory.Unavailable("increment", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[name] += amount
	return nil
}

func (s *Store) Decrement(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return inventory.Unavailable("decrement", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	qty, ok := s.items[name]
	switch {
	case !ok:
	case qty == 1:
		delete(s.items, name)
	default:
		s.items[name] = qty - 1
	}
	return nil
}

func (s *Store) Close() error { return nil }
