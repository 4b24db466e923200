// sort.go orders search results.
//
// Every ordering is stable: products that compare equal keep the order the
// previous stage produced, so identical input always yields identical
// output.

package search

import (
	"cmp"
	"slices"

	"github.com/jpl-au/catalogd/internal/store"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort keys. Matching is exact and case-sensitive; anything else sorts by
// name.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortName      = "name"
	SortNewest    = "newest"
)

// SortKeys lists the recognised keys for help text and validation hints.
var SortKeys = []string{SortPriceAsc, SortPriceDesc, SortName, SortNewest}

// Sort orders ps in place by key.
func Sort(ps []store.Product, key string) {
	switch key {
	case SortPriceAsc:
		slices.SortStableFunc(ps, func(a, b store.Product) int {
			return a.Price.Cmp(b.Price)
		})
	case SortPriceDesc:
		slices.SortStableFunc(ps, func(a, b store.Product) int {
			return b.Price.Cmp(a.Price)
		})
	case SortNewest:
		slices.SortStableFunc(ps, func(a, b store.Product) int {
			return cmp.Compare(b.CreatedAt, a.CreatedAt)
		})
	default:
		// Collators keep internal buffers and are not safe for concurrent
		// use, so each sort gets its own.
		c := collate.New(language.Und)
		slices.SortStableFunc(ps, func(a, b store.Product) int {
			return c.CompareString(a.Name, b.Name)
		})
	}
}
