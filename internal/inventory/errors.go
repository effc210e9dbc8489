package inventory

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable marks failures to reach the backing store.
var ErrStoreUnavailable = errors.New("inventory store unavailable")

// StoreError is returned by Store implementations for any failed read or write.
type StoreError struct {
	Op   string
	Name string
	Err  error
}

func (e *StoreError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("inventory %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("inventory %s %q: %v", e.Op, e.Name, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Unavailable wraps err so that errors.Is(err, ErrStoreUnavailable) holds.
func Unavailable(op, name string, err error) error {
	return &StoreError{Op: op, Name: name, Err: fmt.Errorf("%w: %w", ErrStoreUnavailable, err)}
}
