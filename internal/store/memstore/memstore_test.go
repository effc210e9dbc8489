package memstore

import (
	"testing"

	"pantryservice/internal/inventory"
	"pantryservice/internal/inventory/inventorytest"
)

func TestStore(t *testing.T) {
	inventorytest.RunStoreTests(t, func(t *testing.T) inventory.Store {
		return New()
	})
}
