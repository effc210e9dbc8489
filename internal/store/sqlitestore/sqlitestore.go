// Package sqlitestore persists pantry items in a local SQLite database.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pantryservice/internal/inventory"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS inventory (
	name     TEXT PRIMARY KEY,
	quantity REAL NOT NULL
)`

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema exists.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// A single connection serialises writers; busy_timeout covers other processes.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create inventory table: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) List(ctx context.Context) ([]inventory.Item, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, quantity FROM inventory`)
	if err != nil {
		return nil, inventory.Unavailable("list", "", err)
	}
	defer rows.Close()

	var items []inventory.Item
	for rows.Next() {
		var item inventory.Item
		if err := rows.Scan(&item.Name, &item.Quantity); err != nil {
			return nil, &inventory.StoreError{Op: "list", Err: err}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, inventory.Unavailable("list", "", err)
	}
	return items, nil
}

func (s *Store) Increment(ctx context.Context, name string, amount float64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO inventory (name, quantity) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET quantity = quantity + excluded.quantity`,
		name, amount,
	)
	if err != nil {
		return inventory.Unavailable("increment", name, err)
	}
	return nil
}

func (s *Store) Decrement(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return inventory.Unavailable("decrement", name, err)
	}
	defer tx.Rollback()

	var raw any
	err = tx.QueryRowContext(ctx, `SELECT quantity FROM inventory WHERE name = ?`, name).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return inventory.Unavailable("decrement", name, err)
	}

	qty, err := quantityValue(raw)
	if err != nil {
		return &inventory.StoreError{Op: "decrement", Name: name, Err: err}
	}

	if qty == 1 {
		_, err = tx.ExecContext(ctx, `DELETE FROM inventory WHERE name = ?`, name)
	} else {
		_, err = tx.ExecContext(ctx, `UPDATE inventory SET quantity = ? WHERE name = ?`, qty-1, name)
	}
	if err != nil {
		return inventory.Unavailable("decrement", name, err)
	}

	if err := tx.Commit(); err != nil {
		return inventory.Unavailable("decrement", name, err)
	}
	return nil
}

// quantityValue accepts what SQLite hands back for a REAL column.
func quantityValue(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	}
	return 0, fmt.Errorf("quantity has unexpected type %T", raw)
}

func (s *Store) Close() error {
	return s.db.Close()
}
