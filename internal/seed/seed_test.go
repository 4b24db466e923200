package seed_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/jpl-au/catalogd/internal/catalog"
	"github.com/jpl-au/catalogd/internal/seed"
	"github.com/jpl-au/catalogd/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tpl, err := seed.Load()
	require.NoError(t, err)
	assert.Len(t, tpl.Categories, 5)
	assert.Contains(t, tpl.Variations, "")
	for _, c := range tpl.Categories {
		for _, it := range c.Items {
			assert.True(t, it.Price[0].LessThan(it.Price[1]), it.Name)
		}
	}
}

func TestGenerator_Valid(t *testing.T) {
	tpl, err := seed.Load()
	require.NoError(t, err)
	g := seed.NewGenerator(tpl, 42)

	for range 2000 {
		p := g.Next()
		_, err := validate.Product(p.Name, p.Price, p.Stock)
		require.NoError(t, err, "%+v", p)
		assert.LessOrEqual(t, p.Stock, 100)
		assert.NotEmpty(t, p.Description)
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	tpl, err := seed.Load()
	require.NoError(t, err)
	a, b := seed.NewGenerator(tpl, 7), seed.NewGenerator(tpl, 7)
	for range 50 {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestGenerator_StockDistribution(t *testing.T) {
	tpl, err := seed.Load()
	require.NoError(t, err)
	g := seed.NewGenerator(tpl, 1)

	const n = 10000
	var out, low, medium, high int
	for range n {
		switch s := g.Next().Stock; {
		case s == 0:
			out++
		case s <= 5:
			low++
		case s <= 20:
			medium++
		default:
			high++
		}
	}
	// Generous bands around 5/10/20/65 per cent.
	assert.InDelta(t, 0.05, float64(out)/n, 0.02)
	assert.InDelta(t, 0.10, float64(low)/n, 0.02)
	assert.InDelta(t, 0.20, float64(medium)/n, 0.03)
	assert.InDelta(t, 0.65, float64(high)/n, 0.03)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	svc, err := catalog.Open(filepath.Join(dir, "catalog.db"), nil)
	require.NoError(t, err)
	defer svc.Close()

	var out bytes.Buffer
	n, err := seed.Run(context.Background(), &out, svc, seed.Options{Count: 250, Seed: 3})
	require.NoError(t, err)
	assert.Equal(t, 250, n)
	assert.Contains(t, out.String(), "Created 250 products (250 in catalog)")

	st, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 250, st.Products)
	assert.Equal(t, st.Products, st.OutOfStock+st.LowStock+st.MediumStock+st.HighStock)

	_, err = seed.Run(context.Background(), &out, svc, seed.Options{Count: 0})
	assert.Error(t, err)
}
