// filter.go composes the optional product filters.
//
// The same Filters are applied two ways. Without a query they are pushed
// down to the store as a Predicate; after a text match they narrow the
// ranked products in memory so the ranking survives. Both paths must keep
// exactly the same products.

package search

import "github.com/jpl-au/catalogd/internal/store"

// Predicate converts f to the store's predicate form.
func (f Filters) Predicate() store.Predicate {
	return store.Predicate{
		InStock:  f.InStock != nil && *f.InStock,
		MinPrice: f.MinPrice,
		MaxPrice: f.MaxPrice,
	}
}

// Empty reports whether f constrains nothing.
func (f Filters) Empty() bool {
	return (f.InStock == nil || !*f.InStock) && f.MinPrice == nil && f.MaxPrice == nil
}

// Keep reports whether p satisfies every present filter.
func (f Filters) Keep(p *store.Product) bool {
	if f.InStock != nil && *f.InStock && p.Stock <= 0 {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

// Apply returns the products satisfying f, preserving order. The input
// slice is not modified.
func (f Filters) Apply(ps []store.Product) []store.Product {
	if f.Empty() {
		return ps
	}
	out := make([]store.Product, 0, len(ps))
	for i := range ps {
		if f.Keep(&ps[i]) {
			out = append(out, ps[i])
		}
	}
	return out
}
