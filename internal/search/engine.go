// Package search resolves catalog queries: it picks a text-matching
// strategy, applies filters, sorts, paginates and reports the two counts
// that describe the result.
//
// The pipeline is strictly linear:
//
//	match -> filter -> count -> sort -> paginate
//
// total_count is the size of the whole catalog. filtered_count is taken
// after matching and filtering but before the page is cut, so changing
// limit or offset never changes either count. The engine keeps no state
// between requests and never writes; concurrent searches need no
// coordination.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/jpl-au/catalogd/internal/store"
	"github.com/jpl-au/catalogd/internal/trigram"
)

// DefaultLimit is the page size used when neither the request nor the
// options give one.
const DefaultLimit = 20

// Options configures text matching and defaults. Fields and weights are
// explicit so the engine carries no hidden field list.
type Options struct {
	Fields       []store.Field           // searchable fields; order decides substring ordering
	Weights      map[store.Field]float64 // full-text relevance weight per field
	Prefix       bool                    // enable the prefix full-text stage
	Similarity   bool                    // enable the trigram stage
	Threshold    float64                 // minimum similarity, (0, 1]
	DefaultLimit int
}

// DefaultOptions searches name and description, name weighted higher, with
// every stage enabled.
func DefaultOptions() Options {
	return Options{
		Fields: []store.Field{store.FieldName, store.FieldDescription},
		Weights: map[store.Field]float64{
			store.FieldName:        10,
			store.FieldDescription: 4,
		},
		Prefix:       true,
		Similarity:   true,
		Threshold:    trigram.DefaultThreshold,
		DefaultLimit: DefaultLimit,
	}
}

func (o Options) weighted() []store.WeightedField {
	out := make([]store.WeightedField, 0, len(o.Fields))
	for _, f := range o.Fields {
		w, ok := o.Weights[f]
		if !ok {
			w = 1
		}
		out = append(out, store.WeightedField{Field: f, Weight: w})
	}
	return out
}

// Engine answers search requests against a store.
type Engine struct {
	src  store.Searcher
	opts Options
	sel  selector
}

// New creates an Engine. A nil logger uses slog.Default().
func New(src store.Searcher, opts Options, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = DefaultLimit
	}
	return &Engine{
		src:  src,
		opts: opts,
		sel:  selector{opts: opts, log: logger},
	}
}

// view runs fn against a consistent snapshot when the store offers one.
func (e *Engine) view(ctx context.Context, fn func(store.Searcher) error) error {
	if v, ok := e.src.(store.Viewer); ok {
		return v.View(ctx, fn)
	}
	return fn(e.src)
}

// Search runs the full pipeline. Input errors wrap ErrInvalidRequest; store
// failures are returned with context and no partial result.
func (e *Engine) Search(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	limit, offset := e.opts.DefaultLimit, 0
	if req.Limit != nil {
		limit = *req.Limit
	}
	if req.Offset != nil {
		offset = *req.Offset
	}

	var res Result
	err := e.view(ctx, func(src store.Searcher) error {
		total, err := src.CountAll(ctx)
		if err != nil {
			return fmt.Errorf("count catalog: %w", err)
		}
		res.TotalCount = total

		var ps []store.Product
		if strings.TrimSpace(req.Query) == "" {
			ps, err = src.QueryByPredicate(ctx, req.Filters.Predicate())
			if err != nil {
				return fmt.Errorf("filter catalog: %w", err)
			}
		} else {
			ps, res.Strategy, err = e.sel.sel(ctx, src, req.Query)
			if err != nil {
				return fmt.Errorf("search %q: %w", req.Query, err)
			}
			ps = req.Filters.Apply(ps)
		}

		res.FilteredCount = len(ps)
		ps = slices.Clone(ps)
		Sort(ps, req.SortBy)
		res.Products = Page(ps, limit, offset)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Quick runs only the strategy cascade and returns up to limit products in
// the answering strategy's order. The query is required. A nil limit uses
// DefaultLimit; zero returns no products.
func (e *Engine) Quick(ctx context.Context, query string, limit *int) (*QuickResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrInvalidRequest)
	}
	n := e.opts.DefaultLimit
	if limit != nil {
		n = *limit
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidRequest)
	}

	var res QuickResult
	err := e.view(ctx, func(src store.Searcher) error {
		ps, strategy, err := e.sel.sel(ctx, src, query)
		if err != nil {
			return fmt.Errorf("search %q: %w", query, err)
		}
		res = QuickResult{Products: Page(ps, n, 0), Query: query, Strategy: strategy}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
