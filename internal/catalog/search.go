// search.go implements the read-side operations of the catalog service.

package catalog

import (
	"context"
	"fmt"

	"github.com/jpl-au/catalogd/internal/search"
	"github.com/jpl-au/catalogd/internal/service"
	"github.com/jpl-au/catalogd/internal/store"
)

func (s *Service) snapshot() (*search.Engine, int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine, s.quick, s.lowStock
}

// Search runs the full search pipeline.
func (s *Service) Search(ctx context.Context, req search.Request) (*search.Result, error) {
	e, _, _ := s.snapshot()
	return e.Search(ctx, req)
}

// Quick runs the matching cascade only, limited to limit products or, when
// limit is nil, the configured quick limit.
func (s *Service) Quick(ctx context.Context, query string, limit *int) (*search.QuickResult, error) {
	e, quick, _ := s.snapshot()
	if limit == nil {
		limit = &quick
	}
	return e.Quick(ctx, query, limit)
}

// LowStock lists products with stock at or below threshold.
func (s *Service) LowStock(ctx context.Context, threshold *int) (*service.LowStockResult, error) {
	_, _, def := s.snapshot()
	t := def
	if threshold != nil {
		t = *threshold
	}
	if t < 0 {
		return nil, fmt.Errorf("%w: threshold must not be negative", search.ErrInvalidRequest)
	}
	ps, err := s.store.LowStock(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	return &service.LowStockResult{Products: ps, Threshold: t}, nil
}

// Get retrieves a product by id.
func (s *Service) Get(ctx context.Context, id int64) (*store.Product, error) {
	return s.store.Get(ctx, id)
}

// Stats summarises the catalog.
func (s *Service) Stats(ctx context.Context) (*store.Stats, error) {
	return s.store.Stats(ctx)
}
