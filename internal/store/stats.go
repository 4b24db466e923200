// stats.go implements aggregate queries for operational visibility.
//
// Stock buckets follow the ranges the seed generator draws from, so a
// freshly seeded catalog shows roughly 5/10/20/65 per cent across them.

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Stats returns product counts by stock bucket and the price range.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	var minCents, maxCents sql.NullInt64

	err := s.q.QueryRowContext(ctx, `SELECT
			COUNT(*),
			COALESCE(SUM(stock = 0), 0),
			COALESCE(SUM(stock BETWEEN 1 AND 5), 0),
			COALESCE(SUM(stock BETWEEN 6 AND 20), 0),
			COALESCE(SUM(stock > 20), 0),
			MIN(price_cents),
			MAX(price_cents)
		FROM products`).Scan(
		&st.Products, &st.OutOfStock, &st.LowStock, &st.MediumStock, &st.HighStock,
		&minCents, &maxCents)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	if minCents.Valid {
		st.MinPrice = fromCents(minCents.Int64)
	}
	if maxCents.Valid {
		st.MaxPrice = fromCents(maxCents.Int64)
	}

	st.Indexed, err = s.Indexed(ctx)
	if err != nil {
		return nil, err
	}
	return &st, nil
}
