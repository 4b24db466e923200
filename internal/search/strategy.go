// strategy.go selects the text-matching strategy for a query.
//
// Strategies are tried in a fixed order and the first one that is available
// and finds something answers the query:
//
//  1. full_text: all terms against the weighted full-text index
//  2. prefix: the same with each term as a word prefix, for partially typed
//     words; only when enabled and the index exists
//  3. similarity: trigram similarity of the whole query against each field
//  4. substring: case-insensitive "contains" over the fields, always answers
//
// An unavailable index or a failing similarity function is not an error:
// it is logged at WARN and the next strategy runs. Errors returned by the
// store itself abort the search.

package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jpl-au/catalogd/internal/store"
)

// Strategy identifies the stage that produced a result.
type Strategy int

const (
	// StrategyNone means no query was given and no matching ran.
	StrategyNone Strategy = iota
	StrategyFullText
	StrategyPrefix
	StrategySimilarity
	StrategySubstring
)

func (s Strategy) String() string {
	switch s {
	case StrategyFullText:
		return "full_text"
	case StrategyPrefix:
		return "prefix"
	case StrategySimilarity:
		return "similarity"
	case StrategySubstring:
		return "substring"
	default:
		return ""
	}
}

// selector runs the cascade with a fixed configuration.
type selector struct {
	opts Options
	log  *slog.Logger
}

// sel returns matching products ranked by the answering strategy. A blank
// query is the caller's concern; sel assumes there is something to match.
func (s *selector) sel(ctx context.Context, src store.Searcher, query string) ([]store.Product, Strategy, error) {
	query = strings.TrimSpace(query)
	terms := Tokenize(query)
	weighted := s.opts.weighted()

	m, err := src.StructuredTextQuery(ctx, terms, weighted)
	if err != nil {
		return nil, StrategyNone, err
	}
	indexed := m.Status != store.Unavailable
	if m.Status == store.Matched {
		return m.Products, StrategyFullText, nil
	}
	if !indexed {
		s.log.Warn("full-text index unavailable, falling back",
			"strategy", StrategyFullText.String(), "query", query)
	}

	if indexed && s.opts.Prefix {
		m, err := src.PrefixTextQuery(ctx, terms, weighted)
		if err != nil {
			return nil, StrategyNone, err
		}
		if m.Status == store.Matched {
			return m.Products, StrategyPrefix, nil
		}
	}

	if s.opts.Similarity {
		m, err := src.SimilarityQuery(ctx, query, s.opts.Fields, s.opts.Threshold)
		if err != nil {
			return nil, StrategyNone, err
		}
		switch m.Status {
		case store.Matched:
			return m.Products, StrategySimilarity, nil
		case store.Unavailable:
			s.log.Warn("similarity search failed, falling back to substring",
				"strategy", StrategySimilarity.String(), "query", query, "error", m.Err)
		}
	}

	ps, err := src.SubstringQuery(ctx, query, s.opts.Fields)
	if err != nil {
		return nil, StrategyNone, err
	}
	return ps, StrategySubstring, nil
}
