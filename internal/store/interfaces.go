// interfaces.go defines the storage abstraction for the product catalog.
//
// Separated from the SQLite implementation so the search engine can run
// against fakes in tests. The interfaces are granular (Reader, Writer,
// Searcher, Maintainer) so consumers depend only on what they use; the
// search engine needs nothing beyond Searcher.
//
// Design: text-matching capabilities report availability as a typed Status
// in their Match result rather than as an error. A missing index or a
// failing similarity function is an expected condition that the engine
// falls back from; only genuine collaborator failures come back as errors.

package store

import (
	"context"
	"database/sql"
)

// Reader defines lookups outside the search pipeline.
type Reader interface {
	// Get retrieves a product by id. Returns ErrNotFound if absent.
	Get(ctx context.Context, id int64) (*Product, error)

	// LowStock returns products with stock at or below threshold, ordered
	// by stock then id.
	LowStock(ctx context.Context, threshold int) ([]Product, error)

	// Stats returns aggregate stock and price figures.
	Stats(ctx context.Context) (*Stats, error)
}

// Writer defines operations that modify products. Attributes are validated
// before they reach the database.
type Writer interface {
	Create(ctx context.Context, p NewProduct) (*Product, error)
	Update(ctx context.Context, id int64, u ProductUpdate) (*Product, error)
	Delete(ctx context.Context, id int64) error

	// InsertBatch validates every product first and then inserts them in
	// transactions of BatchSize rows. Returns the number inserted.
	InsertBatch(ctx context.Context, ps []NewProduct) (int, error)
}

// Searcher is the read capability consumed by the search engine.
type Searcher interface {
	// CountAll returns the size of the whole catalog.
	CountAll(ctx context.Context) (int, error)

	// QueryByPredicate returns every product satisfying p, ordered by id.
	QueryByPredicate(ctx context.Context, p Predicate) ([]Product, error)

	// StructuredTextQuery matches every term against the weighted fields
	// and ranks by relevance, best first.
	StructuredTextQuery(ctx context.Context, terms []string, fields []WeightedField) (Match, error)

	// PrefixTextQuery is StructuredTextQuery with each term treated as a
	// word prefix.
	PrefixTextQuery(ctx context.Context, terms []string, fields []WeightedField) (Match, error)

	// SimilarityQuery keeps products whose best trigram similarity over
	// fields is at least threshold, most similar first. A failure of the
	// similarity function is reported as Unavailable.
	SimilarityQuery(ctx context.Context, term string, fields []Field, threshold float64) (Match, error)

	// SubstringQuery matches products where any field contains term,
	// ignoring case, ordered by the first field then id. With no fields
	// every product is returned ordered by id.
	SubstringQuery(ctx context.Context, term string, fields []Field) ([]Product, error)
}

// Viewer runs a group of reads against one consistent snapshot.
type Viewer interface {
	View(ctx context.Context, fn func(Searcher) error) error
}

// Maintainer defines operations for database maintenance and lifecycle.
type Maintainer interface {
	// Close releases the database connection.
	Close() error

	// DB exposes the underlying connection for extensions needing custom tables.
	DB() *sql.DB

	// Checkpoint flushes WAL to the main database file.
	Checkpoint(ctx context.Context) error

	// Indexed reports whether the full-text index exists.
	Indexed(ctx context.Context) (bool, error)

	// Reindex creates the full-text index if missing and rebuilds it from
	// the products table.
	Reindex(ctx context.Context) error

	// DropIndex removes the full-text index. Text search then falls back
	// to similarity and substring matching until Reindex is run.
	DropIndex(ctx context.Context) error
}

// Store is the full persistence interface for the catalog.
type Store interface {
	Reader
	Writer
	Searcher
	Viewer
	Maintainer
}
