// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// business logic while this package handles presentation concerns like
// column alignment and truncation.
package format

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jpl-au/catalogd/internal/search"
	"github.com/jpl-au/catalogd/internal/store"
)

// maxName is the widest name column before truncation.
const maxName = 40

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// Table prints products in aligned columns: ID, PRICE, STOCK, NAME.
// Fixed-width columns come first so the variable-width name does not
// disturb alignment.
func Table(w io.Writer, ps []store.Product) error {
	if len(ps) == 0 {
		return nil
	}

	maxID, maxPrice := 2, 5 // minimum "ID", "PRICE"
	for i := range ps {
		maxID = max(maxID, len(fmt.Sprint(ps[i].ID)))
		maxPrice = max(maxPrice, len(ps[i].Price.StringFixed(2)))
	}

	fmt.Fprintf(w, "%*s  %*s  %5s  %s\n", maxID, "ID", maxPrice, "PRICE", "STOCK", "NAME")
	for i := range ps {
		p := &ps[i]
		fmt.Fprintf(w, "%*d  %*s  %5d  %s\n",
			maxID, p.ID, maxPrice, p.Price.StringFixed(2), p.Stock, truncate(p.Name, maxName))
	}
	return nil
}

// Names prints product names, one per line.
func Names(w io.Writer, ps []store.Product) error {
	for i := range ps {
		fmt.Fprintln(w, ps[i].Name)
	}
	return nil
}

// Product prints every attribute of a single product.
func Product(w io.Writer, p *store.Product) error {
	fmt.Fprintf(w, "ID:          %d\n", p.ID)
	fmt.Fprintf(w, "Name:        %s\n", p.Name)
	if p.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", strings.ReplaceAll(p.Description, "\n", "\n             "))
	}
	fmt.Fprintf(w, "Price:       %s\n", p.Price.StringFixed(2))
	stock := fmt.Sprint(p.Stock)
	if !p.InStock() {
		stock += " (out of stock)"
	}
	fmt.Fprintf(w, "Stock:       %s\n", stock)
	fmt.Fprintf(w, "Created:     %s\n", time.Unix(p.CreatedAt, 0).Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Updated:     %s\n", time.Unix(p.UpdatedAt, 0).Format("2006-01-02 15:04"))
	return nil
}

// SearchResult prints a page of results followed by a one-line summary of
// the counts and the strategy that answered.
func SearchResult(w io.Writer, r *search.Result, offset int) error {
	if err := Table(w, r.Products); err != nil {
		return err
	}
	if len(r.Products) > 0 {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%s\n", summary(len(r.Products), offset, r.FilteredCount, r.TotalCount, r.Strategy))
	return nil
}

func summary(page, offset, filtered, total int, s search.Strategy) string {
	var b strings.Builder
	if page == 0 {
		fmt.Fprintf(&b, "No products on this page (%d matched of %d)", filtered, total)
	} else {
		fmt.Fprintf(&b, "Showing %d-%d of %d matched (%d in catalog)", offset+1, offset+page, filtered, total)
	}
	if s != search.StrategyNone {
		fmt.Fprintf(&b, " via %s", s)
	}
	return b.String()
}

// QuickResult prints the products of a quick search.
func QuickResult(w io.Writer, r *search.QuickResult) error {
	if len(r.Products) == 0 {
		fmt.Fprintf(w, "No products match %q\n", r.Query)
		return nil
	}
	return Table(w, r.Products)
}

// Stats prints the stock distribution and price range of the catalog.
func Stats(w io.Writer, s *store.Stats) error {
	fmt.Fprintf(w, "Products:      %d\n", s.Products)
	fmt.Fprintf(w, "Out of stock:  %d\n", s.OutOfStock)
	fmt.Fprintf(w, "Low (1-5):     %d\n", s.LowStock)
	fmt.Fprintf(w, "Medium (6-20): %d\n", s.MediumStock)
	fmt.Fprintf(w, "High (>20):    %d\n", s.HighStock)
	if s.Products > 0 {
		fmt.Fprintf(w, "Price range:   %s - %s\n", s.MinPrice.StringFixed(2), s.MaxPrice.StringFixed(2))
	}
	index := "present"
	if !s.Indexed {
		index = "missing (run 'catalogd reindex')"
	}
	fmt.Fprintf(w, "Text index:    %s\n", index)
	return nil
}
