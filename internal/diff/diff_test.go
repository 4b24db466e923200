package diff

import (
	"strings"
	"testing"

	"github.com/jpl-au/catalogd/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func product(stock int, desc string) *store.Product {
	return &store.Product{
		ID:          7,
		Name:        "Desk Chair",
		Description: desc,
		Price:       decimal.RequireFromString("149"),
		Stock:       stock,
	}
}

func TestProducts_StockChange(t *testing.T) {
	r := Products(product(3, "ergonomic"), product(12, "ergonomic"))

	want := "  name: Desk Chair\n" +
		"  description: ergonomic\n" +
		"  price: 149.00\n" +
		"- stock: 3\n" +
		"+ stock: 12\n"
	assert.Equal(t, want, r.Diff)
	assert.Equal(t, "product 7 (before)", r.Old)
	assert.True(t, r.Changed())
}

func TestProducts_NoChange(t *testing.T) {
	r := Products(product(3, "ergonomic"), product(3, "ergonomic"))
	assert.False(t, r.Changed())
}

func TestProducts_MultilineDescription(t *testing.T) {
	r := Products(product(3, "line one\nline two"), product(3, "line one\nline 2"))

	assert.Contains(t, r.Diff, "  description: line one\n")
	assert.Contains(t, r.Diff, "- description: line two\n")
	assert.Contains(t, r.Diff, "+ description: line 2\n")
}

func TestCompute_CollapsesLongContext(t *testing.T) {
	var old, cur strings.Builder
	for i := range 10 {
		old.WriteString(strings.Repeat("x", i+1) + "\n")
		cur.WriteString(strings.Repeat("x", i+1) + "\n")
	}
	cur.WriteString("added\n")

	r := Compute(old.String(), cur.String(), "a", "b")
	assert.Contains(t, r.Diff, "  ...\n")
	assert.Contains(t, r.Diff, "+ added\n")
}

func TestFormat_Colour(t *testing.T) {
	r := Result{Old: "a", New: "b", Diff: "  same\n- gone\n+ new\n"}

	plain := r.Format(false)
	assert.Equal(t, "--- a\n+++ b\n  same\n- gone\n+ new\n", plain)

	coloured := r.Format(true)
	assert.Contains(t, coloured, "\033[31m- gone\033[0m")
	assert.Contains(t, coloured, "\033[32m+ new\033[0m")
}
