// Package service defines the shared interface for catalog operations.
// Commands, extensions, the MCP server and the HTTP API depend on this
// interface rather than on the concrete catalog service, so each can be
// tested against a fake.
package service

import (
	"context"
	"database/sql"

	"github.com/jpl-au/catalogd/internal/search"
	"github.com/jpl-au/catalogd/internal/store"
)

// Service defines all catalog operations.
//
// Extensions should use catalog.New() to obtain a Service implementation.
// Always call Close() when done (use defer).
//
// Example:
//
//	svc, err := catalog.New("", "")
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	res, err := svc.Search(ctx, search.Request{Query: "laptop"})
type Service interface {
	// Close checkpoints and releases database resources.
	Close() error

	// Search runs the full pipeline: match, filter, count, sort, paginate.
	// Input errors wrap search.ErrInvalidRequest.
	Search(ctx context.Context, req search.Request) (*search.Result, error)

	// Quick runs the text-matching cascade only. The query is required.
	// A nil limit uses the configured quick limit; a negative one is an
	// input error.
	Quick(ctx context.Context, query string, limit *int) (*search.QuickResult, error)

	// LowStock returns products with stock at or below threshold. A nil
	// threshold uses the configured default; a negative one is an input error.
	LowStock(ctx context.Context, threshold *int) (*LowStockResult, error)

	// Get retrieves a product by id. Returns store.ErrNotFound if absent.
	Get(ctx context.Context, id int64) (*store.Product, error)

	// Create validates and inserts a product.
	Create(ctx context.Context, np store.NewProduct, author string) (*store.Product, error)

	// Update applies u to product id and returns the product before and
	// after the change.
	Update(ctx context.Context, id int64, u store.ProductUpdate, author string) (before, after *store.Product, err error)

	// Delete removes product id and returns what was removed.
	Delete(ctx context.Context, id int64, author string) (*store.Product, error)

	// Import validates every product and inserts them in batches. Nothing is
	// inserted if any product is invalid.
	Import(ctx context.Context, ps []store.NewProduct, author string) (int, error)

	// Stats summarises stock levels and prices.
	Stats(ctx context.Context) (*store.Stats, error)

	// Reindex creates the full-text index if missing and rebuilds it.
	Reindex(ctx context.Context) error

	// DropIndex removes the full-text index. Searches fall back to
	// similarity and substring matching until Reindex runs.
	DropIndex(ctx context.Context) error

	// ReloadConfig re-reads configuration and rebuilds the search engine.
	ReloadConfig() error

	// Dir returns the .catalogd directory holding the database.
	Dir() string

	// DB exposes the database for extensions needing custom tables.
	// Do not close this connection directly; use Service.Close().
	DB() *sql.DB
}

// LowStockResult is the answer to a low-stock query.
type LowStockResult struct {
	Products  []store.Product
	Threshold int
}

// LowStockJSON is the API representation of a LowStockResult.
type LowStockJSON struct {
	Products  []store.ProductJSON `json:"products"`
	Threshold int                `json:"threshold"`
	Count     int                `json:"count"`
}

// ToJSON converts a LowStockResult to its API representation.
func (r *LowStockResult) ToJSON() LowStockJSON {
	return LowStockJSON{
		Products:  store.ProductsJSON(r.Products),
		Threshold: r.Threshold,
		Count:     len(r.Products),
	}
}
