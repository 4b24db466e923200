// Package store defines product persistence types and the Store interface.
// Implementations handle the actual database operations while consumers
// depend only on the interfaces, enabling testing and alternative backends.
package store

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a single catalog record. Prices are held as decimals with two
// places; the database stores them as integer cents.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CreatedAt   int64 // Unix timestamp of creation
	UpdatedAt   int64 // Unix timestamp of last modification
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// ProductJSON is the API representation of a Product. Prices are rendered
// as fixed two-place strings so clients never see float rounding.
type ProductJSON struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	Stock       int    `json:"stock"`
	InStock     bool   `json:"in_stock"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ToJSON converts a Product to its API representation with RFC3339 timestamps.
func (p *Product) ToJSON() ProductJSON {
	return ProductJSON{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Stock:       p.Stock,
		InStock:     p.InStock(),
		CreatedAt:   time.Unix(p.CreatedAt, 0).UTC().Format(time.RFC3339),
		UpdatedAt:   time.Unix(p.UpdatedAt, 0).UTC().Format(time.RFC3339),
	}
}

// ProductsJSON converts a slice of products, never returning nil so that
// empty results encode as [] rather than null.
func ProductsJSON(ps []Product) []ProductJSON {
	out := make([]ProductJSON, 0, len(ps))
	for i := range ps {
		out = append(out, ps[i].ToJSON())
	}
	return out
}

// MarshalJSON encodes a value with indentation for human-readable CLI output.
// Use this instead of json.Marshal when the output will be displayed to users.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// NewProduct holds the attributes of a product to be created. A zero
// CreatedAt means "now"; imports set it to preserve original timestamps.
type NewProduct struct {
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Price       decimal.Decimal `json:"price" yaml:"price"`
	Stock       int             `json:"stock" yaml:"stock"`
	CreatedAt   int64           `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// ProductUpdate changes only the fields that are set.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
}

// Empty reports whether the update would change nothing.
func (u ProductUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil && u.Stock == nil
}

// Field names a searchable text column.
type Field string

const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
)

// Fields lists every searchable column in index column order.
var Fields = []Field{FieldName, FieldDescription}

// Valid reports whether f is a known searchable column.
func (f Field) Valid() bool {
	return f == FieldName || f == FieldDescription
}

// WeightedField pairs a searchable column with its relevance weight.
type WeightedField struct {
	Field  Field
	Weight float64
}

// Predicate is a conjunction of optional product constraints. Nil bounds
// and a false InStock impose nothing.
type Predicate struct {
	InStock  bool
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// Status reports how a text-matching capability answered.
type Status int

const (
	// NoMatch means the capability ran and found nothing.
	NoMatch Status = iota
	// Matched means at least one product was found.
	Matched
	// Unavailable means the capability could not run: its index is missing
	// or the similarity function failed. Not an error for the caller.
	Unavailable
)

func (s Status) String() string {
	switch s {
	case Matched:
		return "matched"
	case Unavailable:
		return "unavailable"
	default:
		return "no match"
	}
}

// Match is the typed outcome of a ranked text query.
type Match struct {
	Products []Product
	Status   Status
	Err      error // cause when Unavailable, for logging only
}

func matched(ps []Product) Match {
	if len(ps) == 0 {
		return Match{Status: NoMatch}
	}
	return Match{Products: ps, Status: Matched}
}

func unavailable(err error) Match {
	return Match{Status: Unavailable, Err: err}
}

// Stats summarises the catalog's stock and price distribution.
type Stats struct {
	Products    int64           `json:"products"`
	OutOfStock  int64           `json:"out_of_stock"`
	LowStock    int64           `json:"low_stock"`    // 1-5 units
	MediumStock int64           `json:"medium_stock"` // 6-20 units
	HighStock   int64           `json:"high_stock"`   // more than 20 units
	MinPrice    decimal.Decimal `json:"min_price"`
	MaxPrice    decimal.Decimal `json:"max_price"`
	Indexed     bool            `json:"indexed"` // full-text index present
}
