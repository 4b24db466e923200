package search_test

import (
	"testing"

	"github.com/jpl-au/catalogd/internal/search"
	"github.com/jpl-au/catalogd/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams_Parse(t *testing.T) {
	req, err := search.Params{
		Query:    "gaming",
		InStock:  "true",
		MinPrice: "10",
		MaxPrice: "99.95",
		SortBy:   "price_asc",
		Limit:    "5",
		Offset:   "10",
	}.Parse()
	require.NoError(t, err)

	assert.Equal(t, "gaming", req.Query)
	require.NotNil(t, req.Filters.InStock)
	assert.True(t, *req.Filters.InStock)
	assert.Equal(t, "10", req.Filters.MinPrice.String())
	assert.Equal(t, "99.95", req.Filters.MaxPrice.String())
	assert.Equal(t, "price_asc", req.SortBy)
	assert.Equal(t, 5, *req.Limit)
	assert.Equal(t, 10, *req.Offset)
}

func TestParams_ParseAbsent(t *testing.T) {
	req, err := search.Params{InStock: "false"}.Parse()
	require.NoError(t, err)
	assert.Nil(t, req.Filters.InStock)
	assert.Nil(t, req.Filters.MinPrice)
	assert.Nil(t, req.Limit)
	assert.Nil(t, req.Offset)
	assert.True(t, req.Filters.Empty())
}

func TestParams_ParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		params search.Params
		msg    string
	}{
		{"min price", search.Params{MinPrice: "cheap"}, "min_price must be a number"},
		{"max price", search.Params{MaxPrice: "1,000"}, "max_price must be a number"},
		{"limit", search.Params{Limit: "ten"}, "limit must be an integer"},
		{"negative limit", search.Params{Limit: "-1"}, "limit must not be negative"},
		{"negative offset", search.Params{Offset: "-5"}, "offset must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.params.Parse()
			assert.ErrorIs(t, err, search.ErrInvalidRequest)
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"gaming mouse", []string{"gaming", "mouse"}},
		{"  Gaming,   MOUSE!! ", []string{"Gaming", "MOUSE"}},
		{"t-shirt (cotton)", []string{"t", "shirt", "cotton"}},
		{`"quoted" OR NEAR`, []string{"quoted", "OR", "NEAR"}},
		{"mouse Mouse mouse", []string{"mouse"}},
		{"4K monitor", []string{"4K", "monitor"}},
		{"café", []string{"café"}},
		{"!!!", []string{}},
		{"", []string{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, search.Tokenize(tt.in), tt.in)
	}
}

func TestPage(t *testing.T) {
	ps := make([]store.Product, 5)
	for i := range ps {
		ps[i].ID = int64(i + 1)
	}
	ids := func(ps []store.Product) []int64 {
		out := []int64{}
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}

	assert.Equal(t, []int64{1, 2}, ids(search.Page(ps, 2, 0)))
	assert.Equal(t, []int64{4, 5}, ids(search.Page(ps, 2, 3)))
	assert.Equal(t, []int64{5}, ids(search.Page(ps, 10, 4)))
	assert.Empty(t, search.Page(ps, 10, 5))
	assert.Empty(t, search.Page(ps, 0, 0))
	assert.NotNil(t, search.Page(nil, 20, 0))
}

func TestFilters_PredicateAgreesWithKeep(t *testing.T) {
	f := search.Filters{InStock: boolp(true), MinPrice: dec("10"), MaxPrice: dec("50")}
	p := f.Predicate()
	assert.True(t, p.InStock)
	assert.Equal(t, f.MinPrice, p.MinPrice)

	keep := product(1, "In range", "", "10.00", 1, 1)
	assert.True(t, f.Keep(&keep))
	out := product(2, "Out of stock", "", "20.00", 0, 1)
	assert.False(t, f.Keep(&out))
	dear := product(3, "Too dear", "", "50.01", 3, 1)
	assert.False(t, f.Keep(&dear))

	assert.False(t, search.Filters{InStock: boolp(false)}.Predicate().InStock)
}
