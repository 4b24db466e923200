// write.go implements product creation, modification, removal and bulk
// import for the catalog service.
//
// Design: extension events fire only after the store has committed, so a
// handler never observes a change that was rolled back.

package catalog

import (
	"context"
	"fmt"

	"github.com/jpl-au/catalogd/extension"
	"github.com/jpl-au/catalogd/internal/store"
)

// Create validates and inserts a product.
func (s *Service) Create(ctx context.Context, np store.NewProduct, by string) (*store.Product, error) {
	p, err := s.store.Create(ctx, np)
	if err != nil {
		return nil, fmt.Errorf("create %q: %w", np.Name, err)
	}
	s.fireEvent(extension.ProductEvent{
		Type:   extension.EventProductCreate,
		ID:     p.ID,
		Name:   p.Name,
		Author: author(by),
	})
	return p, nil
}

// Update applies u to product id. The product before the change is returned
// alongside the result so callers can show a diff.
func (s *Service) Update(ctx context.Context, id int64, u store.ProductUpdate, by string) (*store.Product, *store.Product, error) {
	before, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("update product %d: %w", id, err)
	}
	after, err := s.store.Update(ctx, id, u)
	if err != nil {
		return nil, nil, fmt.Errorf("update product %d: %w", id, err)
	}
	if !u.Empty() {
		s.fireEvent(extension.ProductEvent{
			Type:   extension.EventProductUpdate,
			ID:     id,
			Name:   after.Name,
			Author: author(by),
		})
	}
	return before, after, nil
}

// Delete removes product id and returns it as it was.
func (s *Service) Delete(ctx context.Context, id int64, by string) (*store.Product, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete product %d: %w", id, err)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete product %d: %w", id, err)
	}
	s.fireEvent(extension.ProductEvent{
		Type:   extension.EventProductDelete,
		ID:     id,
		Name:   p.Name,
		Author: author(by),
	})
	return p, nil
}

// Import inserts ps in batches. Every product is validated before the
// first row is written.
func (s *Service) Import(ctx context.Context, ps []store.NewProduct, by string) (int, error) {
	n, err := s.store.InsertBatch(ctx, ps)
	if n > 0 {
		s.fireEvent(extension.ImportEvent{Count: n, Author: author(by)})
	}
	if err != nil {
		return n, fmt.Errorf("import: %w", err)
	}
	return n, nil
}
