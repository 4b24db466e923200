// request.go defines the request and result values of a catalog search and
// the parsing of their loosely typed forms (query strings, CLI flags, MCP
// arguments) into them.
//
// Design: parsing is the only place input errors arise. Everything that
// reaches the Engine is already well typed, so the pipeline itself only
// fails when the store does.

package search

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jpl-au/catalogd/internal/store"
	"github.com/shopspring/decimal"
)

// ErrInvalidRequest marks every input-validation failure. Callers map it to
// a 400 or a usage error.
var ErrInvalidRequest = errors.New("invalid search request")

// Request is a single catalog query. Every field is optional: the zero
// value returns the first page of the whole catalog sorted by name.
type Request struct {
	Query   string
	Filters Filters
	SortBy  string
	Limit   *int // nil means the engine's default limit
	Offset  *int // nil means 0
}

// Filters are independent optional constraints combined with AND.
type Filters struct {
	InStock  *bool
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// Result is a page of products plus the counts describing the full match.
type Result struct {
	Products      []store.Product
	TotalCount    int // whole catalog, ignoring the request
	FilteredCount int // after query and filters, before pagination
	Strategy      Strategy
}

// ResultJSON is the API representation of a Result.
type ResultJSON struct {
	Products      []store.ProductJSON `json:"products"`
	TotalCount    int                 `json:"total_count"`
	FilteredCount int                 `json:"filtered_count"`
	Strategy      string              `json:"strategy,omitempty"`
}

// ToJSON converts a Result to its API representation.
func (r *Result) ToJSON() ResultJSON {
	return ResultJSON{
		Products:      store.ProductsJSON(r.Products),
		TotalCount:    r.TotalCount,
		FilteredCount: r.FilteredCount,
		Strategy:      r.Strategy.String(),
	}
}

// QuickResult is the answer to a quick search.
type QuickResult struct {
	Products []store.Product
	Query    string
	Strategy Strategy
}

// QuickJSON is the API representation of a QuickResult.
type QuickJSON struct {
	Products []store.ProductJSON `json:"products"`
	Query    string              `json:"query"`
	Count    int                 `json:"count"`
	Strategy string              `json:"strategy,omitempty"`
}

// ToJSON converts a QuickResult to its API representation.
func (r *QuickResult) ToJSON() QuickJSON {
	return QuickJSON{
		Products: store.ProductsJSON(r.Products),
		Query:    r.Query,
		Count:    len(r.Products),
		Strategy: r.Strategy.String(),
	}
}

// Validate rejects negative pagination bounds.
func (r Request) Validate() error {
	if r.Limit != nil && *r.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative", ErrInvalidRequest)
	}
	if r.Offset != nil && *r.Offset < 0 {
		return fmt.Errorf("%w: offset must not be negative", ErrInvalidRequest)
	}
	return nil
}

// Params is the string form of a Request, as received from a URL query or
// command-line flags. Empty strings mean "absent".
type Params struct {
	Query    string
	InStock  string
	MinPrice string
	MaxPrice string
	SortBy   string
	Limit    string
	Offset   string
}

// Parse converts p into a Request. Only the literal "true" enables the
// in-stock filter; any other value leaves it off.
func (p Params) Parse() (Request, error) {
	r := Request{Query: p.Query, SortBy: p.SortBy}

	if strings.TrimSpace(p.InStock) == "true" {
		t := true
		r.Filters.InStock = &t
	}

	var err error
	if r.Filters.MinPrice, err = ParsePrice("min_price", p.MinPrice); err != nil {
		return Request{}, err
	}
	if r.Filters.MaxPrice, err = ParsePrice("max_price", p.MaxPrice); err != nil {
		return Request{}, err
	}
	if r.Limit, err = ParseCount("limit", p.Limit); err != nil {
		return Request{}, err
	}
	if r.Offset, err = ParseCount("offset", p.Offset); err != nil {
		return Request{}, err
	}
	return r, r.Validate()
}

// ParsePrice parses an optional decimal bound. Blank input means absent.
func ParsePrice(name, v string) (*decimal.Decimal, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number, got %q", ErrInvalidRequest, name, v)
	}
	return &d, nil
}

// ParseCount parses an optional non-negative integer. Blank input means absent.
func ParseCount(name, v string) (*int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidRequest, name, v)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: %s must not be negative", ErrInvalidRequest, name)
	}
	return &n, nil
}
