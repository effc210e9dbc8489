package inventory

import "context"

// Store persists pantry items keyed by name. Increment and Decrement must be
// atomic with respect to concurrent callers on the same name.
type Store interface {
	// List returns every item in the collection.
	List(ctx context.Context) ([]Item, error)
	// Increment adds amount to the item, treating an absent item as zero.
	// The amount is stored as given, without validation.
	Increment(ctx context.Context, name string, amount float64) error
	// Decrement removes one unit. An absent item is left alone and an item at
	// exactly one is deleted.
	Decrement(ctx context.Context, name string) error
	Close() error
}
