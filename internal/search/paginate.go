package search

import "github.com/jpl-au/catalogd/internal/store"

// Page returns the window [offset, offset+limit) of ps. Windows past the end
// are empty, not errors. Bounds are assumed non-negative.
func Page(ps []store.Product, limit, offset int) []store.Product {
	if offset >= len(ps) || limit == 0 {
		return []store.Product{}
	}
	end := len(ps)
	if limit < end-offset {
		end = offset + limit
	}
	return ps[offset:end]
}
