// maint.go implements index maintenance for the catalog service.
//
// Separated because these are operator actions rather than normal reads
// and writes. Dropping the index is how an operator forces the similarity
// and substring fallbacks, and reindexing is how it is brought back.

package catalog

import (
	"context"
	"fmt"
)

// Reindex creates the full-text index if missing and rebuilds it.
func (s *Service) Reindex(ctx context.Context) error {
	if err := s.store.Reindex(ctx); err != nil {
		return fmt.Errorf("reindex: %w", err)
	}
	return nil
}

// DropIndex removes the full-text index.
func (s *Service) DropIndex(ctx context.Context) error {
	if err := s.store.DropIndex(ctx); err != nil {
		return fmt.Errorf("drop index: %w", err)
	}
	return nil
}
