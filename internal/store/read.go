// read.go implements product lookups and predicate queries.
//
// Predicate queries push the filter conjunction down to SQL. Ordering is
// always by id so that callers sorting afterwards get a stable, insertion
// ordered input.

package store

import (
	"context"
	"fmt"
	"strings"
)

// Get retrieves a product by id.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (*Product, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = ?`, id)
	return scanProduct(row)
}

// CountAll returns the number of products in the catalog.
func (s *SQLiteStore) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// QueryByPredicate returns every product satisfying p, ordered by id.
func (s *SQLiteStore) QueryByPredicate(ctx context.Context, p Predicate) ([]Product, error) {
	where, args := predicateSQL(p)
	q := `SELECT ` + productColumns + ` FROM products p`
	if where != "" {
		q += ` WHERE ` + where
	}
	q += ` ORDER BY p.id`

	rows, err := s.q.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// predicateSQL renders p as a WHERE fragment over alias p. Price bounds are
// converted to cents rounding inward, so a bound with sub-cent precision
// keeps exactly the products its decimal comparison would.
func predicateSQL(p Predicate) (string, []any) {
	var conds []string
	var args []any
	if p.InStock {
		conds = append(conds, `p.stock > 0`)
	}
	if p.MinPrice != nil {
		conds = append(conds, `p.price_cents >= ?`)
		args = append(args, p.MinPrice.Shift(2).Ceil().IntPart())
	}
	if p.MaxPrice != nil {
		conds = append(conds, `p.price_cents <= ?`)
		args = append(args, p.MaxPrice.Shift(2).Floor().IntPart())
	}
	return strings.Join(conds, ` AND `), args
}

// LowStock returns products at or below threshold, lowest stock first.
func (s *SQLiteStore) LowStock(ctx context.Context, threshold int) ([]Product, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products p WHERE p.stock <= ? ORDER BY p.stock, p.id`,
		threshold)
	if err != nil {
		return nil, fmt.Errorf("query low stock: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}
