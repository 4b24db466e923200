// Package seed generates realistic fixture products for demos and load
// testing. Products are built from category templates (templates.yaml)
// with random variations, colours, sizes and description endings, and a
// stock distribution of roughly 5% out of stock, 10% low (1-5), 20% medium
// (6-20) and 65% high (21-100).
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"math/rand/v2"
	"sync"

	"github.com/jpl-au/catalogd/internal/progress"
	"github.com/jpl-au/catalogd/internal/service"
	"github.com/jpl-au/catalogd/internal/store"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var templatesYAML []byte

// MaxCount bounds a single seed run.
const MaxCount = 1_000_000

// Item is a product template.
type Item struct {
	Name         string            `yaml:"name"`
	Price        []decimal.Decimal `yaml:"price"` // [min, max]
	Descriptions []string          `yaml:"descriptions"`
}

// Category groups templates and says which name decorations apply.
type Category struct {
	Name   string `yaml:"name"`
	Colour bool   `yaml:"colour"`
	Size   bool   `yaml:"size"`
	Items  []Item `yaml:"items"`
}

// Templates is the parsed templates file.
type Templates struct {
	Categories []Category `yaml:"categories"`
	Variations []string   `yaml:"variations"`
	Colours    []string   `yaml:"colours"`
	Sizes      []string   `yaml:"sizes"`
	Suffixes   []string   `yaml:"suffixes"`
}

var (
	loadOnce sync.Once
	loaded   *Templates
	loadErr  error
)

// Load returns the embedded templates.
func Load() (*Templates, error) {
	loadOnce.Do(func() {
		var t Templates
		if err := yaml.Unmarshal(templatesYAML, &t); err != nil {
			loadErr = fmt.Errorf("parse seed templates: %w", err)
			return
		}
		for _, c := range t.Categories {
			for _, it := range c.Items {
				if len(it.Price) != 2 || len(it.Descriptions) == 0 {
					loadErr = fmt.Errorf("seed template %q: want two prices and a description", it.Name)
					return
				}
			}
		}
		loaded = &t
	})
	return loaded, loadErr
}

// pick is one template with the category it belongs to.
type pick struct {
	cat  *Category
	item *Item
}

// Generator produces products from templates.
type Generator struct {
	t     *Templates
	rng   *rand.Rand
	picks []pick
}

// NewGenerator creates a generator. The same seed always yields the same
// products.
func NewGenerator(t *Templates, seed uint64) *Generator {
	g := &Generator{t: t, rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
	for i := range t.Categories {
		c := &t.Categories[i]
		for j := range c.Items {
			g.picks = append(g.picks, pick{cat: c, item: &c.Items[j]})
		}
	}
	return g
}

func (g *Generator) one(s []string) string {
	return s[g.rng.IntN(len(s))]
}

// Next returns a new product. CreatedAt is left zero for the store to fill.
func (g *Generator) Next() store.NewProduct {
	p := g.picks[g.rng.IntN(len(g.picks))]

	name := p.item.Name
	if v := g.one(g.t.Variations); v != "" {
		name = v + " " + name
	}
	if p.cat.Colour && g.rng.Float64() < 0.3 {
		name += " - " + g.one(g.t.Colours)
		if p.cat.Size {
			name += " " + g.one(g.t.Sizes)
		}
	}

	return store.NewProduct{
		Name:        name,
		Description: g.one(p.item.Descriptions) + g.one(g.t.Suffixes),
		Price:       g.price(p.item.Price[0], p.item.Price[1]),
		Stock:       g.stock(),
	}
}

// price draws a whole number of cents between lo and hi inclusive.
func (g *Generator) price(lo, hi decimal.Decimal) decimal.Decimal {
	l := lo.Shift(2).IntPart()
	h := hi.Shift(2).IntPart()
	return decimal.New(l+g.rng.Int64N(h-l+1), -2)
}

func (g *Generator) stock() int {
	switch r := g.rng.Float64(); {
	case r < 0.05:
		return 0
	case r < 0.15:
		return 1 + g.rng.IntN(5)
	case r < 0.35:
		return 6 + g.rng.IntN(15)
	default:
		return 21 + g.rng.IntN(80)
	}
}

// Options configures a seed run.
type Options struct {
	Count  int
	Seed   uint64 // zero picks a random seed
	Author string
}

// Run generates opts.Count products and inserts them store.BatchSize at a
// time, then prints the resulting stock distribution and price range.
func Run(ctx context.Context, w io.Writer, svc service.Service, opts Options) (int, error) {
	if opts.Count < 1 || opts.Count > MaxCount {
		return 0, fmt.Errorf("count must be between 1 and %d, got %d", MaxCount, opts.Count)
	}
	t, err := Load()
	if err != nil {
		return 0, err
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	g := NewGenerator(t, seed)

	fmt.Fprintf(w, "Creating %d sample products...\n", opts.Count)
	prog := progress.New("Seeding", opts.Count)

	inserted := 0
	batch := make([]store.NewProduct, 0, store.BatchSize)
	for inserted < opts.Count {
		batch = batch[:0]
		for range min(store.BatchSize, opts.Count-inserted) {
			batch = append(batch, g.Next())
		}
		n, err := svc.Import(ctx, batch, opts.Author)
		inserted += n
		if err != nil {
			prog.Done()
			return inserted, err
		}
		prog.Add(n)
	}
	prog.Done()

	st, err := svc.Stats(ctx)
	if err != nil {
		return inserted, err
	}
	fmt.Fprintf(w, "Created %d products (%d in catalog)\n", inserted, st.Products)
	fmt.Fprintf(w, "Stock distribution:\n")
	fmt.Fprintf(w, "  Out of stock:        %d\n", st.OutOfStock)
	fmt.Fprintf(w, "  Low stock (1-5):     %d\n", st.LowStock)
	fmt.Fprintf(w, "  Medium stock (6-20): %d\n", st.MediumStock)
	fmt.Fprintf(w, "  High stock (21+):    %d\n", st.HighStock)
	fmt.Fprintf(w, "Price range: %s - %s\n", st.MinPrice.StringFixed(2), st.MaxPrice.StringFixed(2))
	return inserted, nil
}
