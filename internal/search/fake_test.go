package search_test

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"unicode"

	"github.com/jpl-au/catalogd/internal/store"
	"github.com/jpl-au/catalogd/internal/trigram"
)

// fakeCatalog is an in-memory store.Searcher whose capabilities can be
// switched off or made to fail.
type fakeCatalog struct {
	products      []store.Product
	noIndex       bool  // full-text reports Unavailable
	similarityErr error // similarity reports Unavailable with this cause
	countErr      error // CountAll fails
	substringErr  error // SubstringQuery fails
	calls         []string
}

var _ store.Searcher = (*fakeCatalog)(nil)

func (f *fakeCatalog) CountAll(ctx context.Context) (int, error) {
	f.calls = append(f.calls, "count")
	if f.countErr != nil {
		return 0, f.countErr
	}
	return len(f.products), nil
}

func (f *fakeCatalog) QueryByPredicate(ctx context.Context, p store.Predicate) ([]store.Product, error) {
	f.calls = append(f.calls, "predicate")
	var out []store.Product
	for _, pr := range f.products {
		if p.InStock && pr.Stock <= 0 {
			continue
		}
		if p.MinPrice != nil && pr.Price.LessThan(*p.MinPrice) {
			continue
		}
		if p.MaxPrice != nil && pr.Price.GreaterThan(*p.MaxPrice) {
			continue
		}
		out = append(out, pr)
	}
	return out, nil
}

func (f *fakeCatalog) StructuredTextQuery(ctx context.Context, terms []string, fields []store.WeightedField) (store.Match, error) {
	f.calls = append(f.calls, "full_text")
	return f.text(terms, fields, func(word, term string) bool { return word == term })
}

func (f *fakeCatalog) PrefixTextQuery(ctx context.Context, terms []string, fields []store.WeightedField) (store.Match, error) {
	f.calls = append(f.calls, "prefix")
	return f.text(terms, fields, strings.HasPrefix)
}

func (f *fakeCatalog) text(terms []string, fields []store.WeightedField, match func(word, term string) bool) (store.Match, error) {
	if f.noIndex {
		return store.Match{Status: store.Unavailable}, nil
	}
	if len(terms) == 0 || len(fields) == 0 {
		return store.Match{Status: store.NoMatch}, nil
	}

	type ranked struct {
		p     store.Product
		score float64
	}
	var hits []ranked
	for _, p := range f.products {
		score := 0.0
		all := true
		for _, t := range terms {
			t = strings.ToLower(t)
			best := 0.0
			for _, wf := range fields {
				for _, w := range words(value(p, wf.Field)) {
					if match(w, t) && wf.Weight > best {
						best = wf.Weight
					}
				}
			}
			if best == 0 {
				all = false
				break
			}
			score += best
		}
		if all {
			hits = append(hits, ranked{p, score})
		}
	}
	slices.SortStableFunc(hits, func(a, b ranked) int { return cmp.Compare(b.score, a.score) })

	out := make([]store.Product, len(hits))
	for i, h := range hits {
		out[i] = h.p
	}
	return status(out), nil
}

func (f *fakeCatalog) SimilarityQuery(ctx context.Context, term string, fields []store.Field, threshold float64) (store.Match, error) {
	f.calls = append(f.calls, "similarity")
	if f.similarityErr != nil {
		return store.Match{Status: store.Unavailable, Err: f.similarityErr}, nil
	}
	type ranked struct {
		p     store.Product
		score float64
	}
	var hits []ranked
	for _, p := range f.products {
		best := 0.0
		for _, fl := range fields {
			best = max(best, trigram.Similarity(term, value(p, fl)))
		}
		if len(fields) > 0 && best >= threshold {
			hits = append(hits, ranked{p, best})
		}
	}
	slices.SortStableFunc(hits, func(a, b ranked) int { return cmp.Compare(b.score, a.score) })

	out := make([]store.Product, len(hits))
	for i, h := range hits {
		out[i] = h.p
	}
	return status(out), nil
}

func (f *fakeCatalog) SubstringQuery(ctx context.Context, term string, fields []store.Field) ([]store.Product, error) {
	f.calls = append(f.calls, "substring")
	if f.substringErr != nil {
		return nil, f.substringErr
	}
	if len(fields) == 0 {
		return slices.Clone(f.products), nil
	}
	var out []store.Product
	for _, p := range f.products {
		for _, fl := range fields {
			if strings.Contains(strings.ToLower(value(p, fl)), strings.ToLower(term)) {
				out = append(out, p)
				break
			}
		}
	}
	slices.SortStableFunc(out, func(a, b store.Product) int {
		return strings.Compare(value(a, fields[0]), value(b, fields[0]))
	})
	return out, nil
}

func status(ps []store.Product) store.Match {
	if len(ps) == 0 {
		return store.Match{Status: store.NoMatch}
	}
	return store.Match{Products: ps, Status: store.Matched}
}

func value(p store.Product, f store.Field) string {
	if f == store.FieldDescription {
		return p.Description
	}
	return p.Name
}

func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
