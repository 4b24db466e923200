// write.go implements product creation, modification and removal.
//
// Attributes are validated here as well as by the schema's CHECK
// constraints. Validation first gives callers a readable message naming
// every bad field; the constraints guard against writers that bypass
// the store.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jpl-au/catalogd/internal/validate"
)

// BatchSize is the number of rows InsertBatch writes per transaction.
const BatchSize = 100

const insertSQL = `INSERT INTO products (name, description, price_cents, stock, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)`

// prepare validates np and fills in defaults, returning the row to insert.
func prepare(np NewProduct, now int64) (NewProduct, error) {
	name, err := validate.Product(np.Name, np.Price, np.Stock)
	if err != nil {
		return np, err
	}
	np.Name = name
	if np.CreatedAt == 0 {
		np.CreatedAt = now
	}
	return np, nil
}

// Create inserts a single product and returns it as stored.
func (s *SQLiteStore) Create(ctx context.Context, np NewProduct) (*Product, error) {
	np, err := prepare(np, time.Now().Unix())
	if err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx, insertSQL,
		np.Name, np.Description, toCents(np.Price), np.Stock, np.CreatedAt, np.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return s.Get(ctx, id)
}

// Update applies the set fields of u to product id and returns the result.
// An empty update returns the product unchanged.
func (s *SQLiteStore) Update(ctx context.Context, id int64, u ProductUpdate) (*Product, error) {
	var out *Product
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		cur, err := scanProduct(tx.QueryRowContext(ctx,
			`SELECT `+productColumns+` FROM products p WHERE p.id = ?`, id))
		if err != nil {
			return err
		}
		if u.Empty() {
			out = cur
			return nil
		}

		next := *cur
		if u.Name != nil {
			next.Name = *u.Name
		}
		if u.Description != nil {
			next.Description = *u.Description
		}
		if u.Price != nil {
			next.Price = *u.Price
		}
		if u.Stock != nil {
			next.Stock = *u.Stock
		}
		name, err := validate.Product(next.Name, next.Price, next.Stock)
		if err != nil {
			return err
		}
		next.Name = name
		next.UpdatedAt = time.Now().Unix()

		if _, err := tx.ExecContext(ctx,
			`UPDATE products SET name = ?, description = ?, price_cents = ?, stock = ?, updated_at = ? WHERE id = ?`,
			next.Name, next.Description, toCents(next.Price), next.Stock, next.UpdatedAt, id); err != nil {
			return fmt.Errorf("update product %d: %w", id, err)
		}
		out = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete permanently removes a product.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertBatch validates all products before writing any, then inserts them
// BatchSize rows per transaction. A failure part way leaves earlier batches
// committed; the returned count says how many made it.
func (s *SQLiteStore) InsertBatch(ctx context.Context, ps []NewProduct) (int, error) {
	now := time.Now().Unix()
	rows := make([]NewProduct, len(ps))
	for i, np := range ps {
		p, err := prepare(np, now)
		if err != nil {
			return 0, fmt.Errorf("product %d (%q): %w", i+1, np.Name, err)
		}
		rows[i] = p
	}

	inserted := 0
	for start := 0; start < len(rows); start += BatchSize {
		end := min(start+BatchSize, len(rows))
		err := s.Tx(ctx, func(tx *sql.Tx) error {
			stmt, err := tx.PrepareContext(ctx, insertSQL)
			if err != nil {
				return fmt.Errorf("prepare insert: %w", err)
			}
			defer stmt.Close()
			for _, np := range rows[start:end] {
				if _, err := stmt.ExecContext(ctx,
					np.Name, np.Description, toCents(np.Price), np.Stock, np.CreatedAt, np.CreatedAt); err != nil {
					return fmt.Errorf("insert %q: %w", np.Name, err)
				}
			}
			return nil
		})
		if err != nil {
			return inserted, err
		}
		inserted += end - start
	}
	return inserted, nil
}
