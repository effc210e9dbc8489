// Package docstore persists pantry items in a Firestore collection. Each
// document is keyed by item name and holds a single quantity field.
package docstore

import (
	"context"
	"errors"
	"fmt"

	"pantryservice/internal/inventory"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const quantityField = "quantity"

type Store struct {
	client     *firestore.Client
	collection string
}

// Open connects to the project's default database. FIRESTORE_EMULATOR_HOST is
// honoured by the client library.
func Open(ctx context.Context, projectID, collection string) (*Store, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return New(client, collection), nil
}

func New(client *firestore.Client, collection string) *Store {
	return &Store{client: client, collection: collection}
}

func (s *Store) doc(name string) *firestore.DocumentRef {
	return s.client.Collection(s.collection).Doc(name)
}

func (s *Store) List(ctx context.Context) ([]inventory.Item, error) {
	docs, err := s.client.Collection(s.collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, inventory.Unavailable("list", "", err)
	}

	items := make([]inventory.Item, 0, len(docs))
	for _, doc := range docs {
		qty, err := quantityOf(doc)
		if err != nil {
			return nil, &inventory.StoreError{Op: "list", Name: doc.Ref.ID, Err: err}
		}
		items = append(items, inventory.Item{Name: doc.Ref.ID, Quantity: qty})
	}
	return items, nil
}

// Increment uses a server-side field transform, so concurrent increments
// never overwrite each other. A missing document starts at zero.
func (s *Store) Increment(ctx context.Context, name string, amount float64) error {
	_, err := s.doc(name).Set(ctx, map[string]interface{}{
		quantityField: firestore.Increment(amount),
	}, firestore.MergeAll)
	if err != nil {
		return inventory.Unavailable("increment", name, err)
	}
	return nil
}

func (s *Store) Decrement(ctx context.Context, name string) error {
	ref := s.doc(name)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return nil
		}
		if err != nil {
			return err
		}

		qty, err := quantityOf(snap)
		if err != nil {
			return &inventory.StoreError{Op: "decrement", Name: name, Err: err}
		}
		if qty == 1 {
			return tx.Delete(ref)
		}
		return tx.Set(ref, map[string]interface{}{quantityField: qty - 1}, firestore.MergeAll)
	})
	if err != nil {
		return decrementError(name, err)
	}
	return nil
}

// decrementError keeps bad-data errors raised inside the transaction as they
// are; everything else means Firestore could not be reached.
func decrementError(name string, err error) error {
	var storeErr *inventory.StoreError
	if errors.As(err, &storeErr) {
		return storeErr
	}
	return inventory.Unavailable("decrement", name, err)
}

func (s *Store) Close() error {
	return s.client.Close()
}

// quantityOf reads the quantity field, which Firestore returns as int64 or
// float64 depending on how it was written.
func quantityOf(snap *firestore.DocumentSnapshot) (float64, error) {
	v, err := snap.DataAt(quantityField)
	if err != nil {
		return 0, err
	}
	return toFloat(v)
}

func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("quantity has unexpected type %T", v)
	}
}
