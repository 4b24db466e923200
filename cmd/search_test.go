package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchOut struct {
	Products      []productOut `json:"products"`
	TotalCount    int          `json:"total_count"`
	FilteredCount int          `json:"filtered_count"`
	Strategy      string       `json:"strategy"`
}

func names(ps []productOut) []string {
	var out []string
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}

func TestSearch(t *testing.T) {
	env := seeded(t)

	tests := []struct {
		name     string
		args     []string
		want     []string
		filtered int
		strategy string
	}{
		{
			name:     "no query sorts by name",
			args:     []string{"search"},
			want:     []string{"Gaming Laptop", "Mechanical Keyboard", "Office Laptop", "Travel Mug", "Wireless Mouse"},
			filtered: 5,
		},
		{
			name:     "full text",
			args:     []string{"search", "laptop"},
			want:     []string{"Gaming Laptop", "Office Laptop"},
			filtered: 2,
			strategy: "full_text",
		},
		{
			name:     "prefix",
			args:     []string{"search", "lapt"},
			want:     []string{"Gaming Laptop", "Office Laptop"},
			filtered: 2,
			strategy: "prefix",
		},
		{
			name:     "in stock",
			args:     []string{"search", "laptop", "--in-stock"},
			want:     []string{"Gaming Laptop"},
			filtered: 1,
			strategy: "full_text",
		},
		{
			name:     "price band sorted",
			args:     []string{"search", "--min-price", "20", "--max-price", "100", "--sort", "price_desc"},
			want:     []string{"Mechanical Keyboard", "Wireless Mouse"},
			filtered: 2,
		},
		{
			name:     "cheapest first paged",
			args:     []string{"search", "--sort", "price_asc", "--limit", "2", "--offset", "1"},
			want:     []string{"Wireless Mouse", "Mechanical Keyboard"},
			filtered: 5,
		},
		{
			name:     "offset past end",
			args:     []string{"search", "--offset", "50"},
			filtered: 5,
		},
		{
			name:     "inverted price band",
			args:     []string{"search", "--min-price", "100", "--max-price", "10"},
			filtered: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runJSON[searchOut](env, tt.args...)
			assert.Equal(t, tt.want, names(res.Products))
			assert.Equal(t, 5, res.TotalCount)
			assert.Equal(t, tt.filtered, res.FilteredCount)
			assert.Equal(t, tt.strategy, res.Strategy)
		})
	}
}

func TestSearch_Typo(t *testing.T) {
	env := seeded(t)

	res := runJSON[searchOut](env, "search", "travle mug")
	require.NotEmpty(t, res.Products)
	assert.Equal(t, "Travel Mug", res.Products[0].Name)
	assert.Equal(t, "similarity", res.Strategy)
}

func TestSearch_FallsBackWithoutIndex(t *testing.T) {
	env := seeded(t)

	env.run("reindex", "--drop", "--force")
	res := runJSON[searchOut](env, "search", "laptop")
	assert.Equal(t, []string{"Gaming Laptop", "Office Laptop"}, names(res.Products))
	assert.NotEqual(t, "full_text", res.Strategy)

	env.run("reindex")
	res = runJSON[searchOut](env, "search", "laptop")
	assert.Equal(t, "full_text", res.Strategy)
}

func TestSearch_Text(t *testing.T) {
	env := seeded(t)

	out := env.run("search", "laptop")
	env.contains(out, "Gaming Laptop")
	env.contains(out, "1299.99")
	env.contains(out, "Showing 1-2 of 2 matched (5 in catalog) via full_text")

	out = env.run("search", "laptop", "-l")
	assert.Equal(t, "Gaming Laptop\nOffice Laptop", strings.TrimSpace(out))
}

func TestSearch_BadInput(t *testing.T) {
	env := seeded(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"search", "--limit", "-1"}, "limit must not be negative"},
		{[]string{"search", "--offset", "x"}, "offset must be an integer"},
		{[]string{"search", "--min-price", "cheap"}, "min_price must be a number"},
	}
	for _, tt := range tests {
		out, err := env.runErr(tt.args...)
		assert.Error(t, err, tt.args)
		env.contains(out, tt.want)
	}
}

func TestFind(t *testing.T) {
	env := seeded(t)

	res := runJSON[struct {
		Products []productOut `json:"products"`
		Query    string       `json:"query"`
		Count    int          `json:"count"`
	}](env, "find", "mouse")
	assert.Equal(t, "mouse", res.Query)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, "Wireless Mouse", res.Products[0].Name)

	out := env.run("find", "laptop", "--limit", "1", "-l")
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 1)

	out, err := env.runErr("find", " ")
	assert.Error(t, err)
	env.contains(out, "search query is required")

	out, err = env.runErr("find", "laptop", "--limit=-5")
	assert.Error(t, err)
	env.contains(out, "limit must not be negative")

	res = runJSON[struct {
		Products []productOut `json:"products"`
		Query    string       `json:"query"`
		Count    int          `json:"count"`
	}](env, "find", "laptop", "--limit", "0")
	assert.Equal(t, 0, res.Count)
}

func TestLowStock(t *testing.T) {
	env := seeded(t)

	res := runJSON[struct {
		Products  []productOut `json:"products"`
		Threshold int          `json:"threshold"`
		Count     int          `json:"count"`
	}](env, "low-stock")
	assert.Equal(t, 10, res.Threshold)
	assert.Equal(t, []string{"Office Laptop", "Gaming Laptop", "Travel Mug"}, names(res.Products))

	out := env.run("low-stock", "-t", "0")
	env.contains(out, "Office Laptop")
	env.notContains(out, "Gaming Laptop")
	env.contains(out, "1 product(s) at or below 0 in stock")

	env.run("config", "stock.low_threshold", "4", "--local")
	res = runJSON[struct {
		Products  []productOut `json:"products"`
		Threshold int          `json:"threshold"`
		Count     int          `json:"count"`
	}](env, "low-stock")
	assert.Equal(t, 4, res.Threshold)
	assert.Equal(t, 2, res.Count)
}
