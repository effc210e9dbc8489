// Package inventorytest holds behaviour checks shared by every inventory.Store.
package inventorytest

import (
	"context"
	"sort"
	"testing"

	"pantryservice/internal/inventory"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// RunStoreTests exercises store semantics against a fresh store from newStore.
func RunStoreTests(t *testing.T, newStore func(t *testing.T) inventory.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("eggs example", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Increment(ctx, "eggs", 2))
		assertItems(t, s, []inventory.Item{{Name: "eggs", Quantity: 2}})

		require.NoError(t, s.Increment(ctx, "eggs", 3))
		assertItems(t, s, []inventory.Item{{Name: "eggs", Quantity: 5}})

		for range 5 {
			require.NoError(t, s.Decrement(ctx, "eggs"))
		}
		assertItems(t, s, nil)
	})

	t.Run("decrement absent is a no-op", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Decrement(ctx, "flour"))
		assertItems(t, s, nil)
	})

	t.Run("decrement at one deletes", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Increment(ctx, "milk", 1))
		require.NoError(t, s.Increment(ctx, "rice", 4))
		require.NoError(t, s.Decrement(ctx, "milk"))

		assertItems(t, s, []inventory.Item{{Name: "rice", Quantity: 4}})
	})

	t.Run("recreated item starts from the new amount", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Increment(ctx, "salt", 1))
		require.NoError(t, s.Decrement(ctx, "salt"))
		require.NoError(t, s.Increment(ctx, "salt", 7))

		assertItems(t, s, []inventory.Item{{Name: "salt", Quantity: 7}})
	})

	t.Run("amounts are stored verbatim", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Increment(ctx, "oil", 2.5))
		require.NoError(t, s.Increment(ctx, "oil", -1))
		require.NoError(t, s.Increment(ctx, "sugar", 0))

		assertItems(t, s, []inventory.Item{
			{Name: "oil", Quantity: 1.5},
			{Name: "sugar", Quantity: 0},
		})
	})

	t.Run("names are case preserving", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Increment(ctx, "Basil", 1))
		require.NoError(t, s.Increment(ctx, "basil", 1))

		assertItems(t, s, []inventory.Item{
			{Name: "Basil", Quantity: 1},
			{Name: "basil", Quantity: 1},
		})
	})

	t.Run("concurrent increments are not lost", func(t *testing.T) {
		s := newStore(t)
		const writers = 20

		var g errgroup.Group
		for range writers {
			g.Go(func() error { return s.Increment(ctx, "beans", 1) })
		}
		require.NoError(t, g.Wait())

		assertItems(t, s, []inventory.Item{{Name: "beans", Quantity: writers}})
	})

	t.Run("concurrent decrements stop at deletion", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Increment(ctx, "apples", 5))

		var g errgroup.Group
		for range 8 {
			g.Go(func() error { return s.Decrement(ctx, "apples") })
		}
		require.NoError(t, g.Wait())

		assertItems(t, s, nil)
	})

	t.Run("cancelled context fails with store error", func(t *testing.T) {
		s := newStore(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := s.List(cctx)
		require.Error(t, err)
		var storeErr *inventory.StoreError
		assert.ErrorAs(t, err, &storeErr)
	})
}

func assertItems(t *testing.T, s inventory.Store, want []inventory.Item) {
	t.Helper()

	got, err := s.List(context.Background())
	require.NoError(t, err)
	sort.Slice(got, func(i, j int) bool { return got[i].Name < got[j].Name })

	if len(want) == 0 && len(got) == 0 {
		return
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}
