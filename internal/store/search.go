// search.go implements the text-matching capabilities used by the search
// engine: FTS5 ranked queries, trigram similarity and substring matching.
//
// Separated from read.go because each capability answers with a typed Match
// rather than a plain slice. Full-text queries report Unavailable when the
// FTS5 table is missing; similarity reports Unavailable when the registered
// function fails. Substring matching has no prerequisite and never reports
// availability at all.
//
// Terms are always quoted before they reach FTS5, so user input can never
// be interpreted as query syntax (NEAR, OR, column filters, ...).

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Indexed reports whether the full-text table exists.
func (s *SQLiteStore) Indexed(ctx context.Context) (bool, error) {
	var n int
	err := s.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, ftsTable).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check index: %w", err)
	}
	return n > 0, nil
}

// StructuredTextQuery matches all terms against the weighted fields, best
// bm25 rank first, ties by id.
func (s *SQLiteStore) StructuredTextQuery(ctx context.Context, terms []string, fields []WeightedField) (Match, error) {
	return s.textQuery(ctx, terms, fields, false)
}

// PrefixTextQuery is StructuredTextQuery with every term matched as a prefix.
func (s *SQLiteStore) PrefixTextQuery(ctx context.Context, terms []string, fields []WeightedField) (Match, error) {
	return s.textQuery(ctx, terms, fields, true)
}

func (s *SQLiteStore) textQuery(ctx context.Context, terms []string, fields []WeightedField, prefix bool) (Match, error) {
	ok, err := s.Indexed(ctx)
	if err != nil {
		return Match{}, err
	}
	if !ok {
		return unavailable(nil), nil
	}

	expr, weights, err := ftsExpr(terms, fields, prefix)
	if err != nil {
		return Match{}, err
	}
	if expr == "" {
		return matched(nil), nil
	}

	q := `SELECT ` + productColumns + `
		FROM ` + ftsTable + `
		JOIN products p ON p.id = ` + ftsTable + `.rowid
		WHERE ` + ftsTable + ` MATCH ?
		ORDER BY bm25(` + ftsTable + `, ` + weights + `), p.id`

	rows, err := s.q.QueryContext(ctx, q, expr)
	if err != nil {
		return Match{}, fmt.Errorf("full-text query: %w", err)
	}
	defer rows.Close()

	ps, err := scanProducts(rows)
	if err != nil {
		return Match{}, fmt.Errorf("full-text query: %w", err)
	}
	return matched(ps), nil
}

// ftsExpr builds a column-filtered conjunction such as
//
//	{name description} : ("wireless" "mouse")
//
// and the positional bm25 weight list for the index columns. Columns not in
// fields get weight zero. An empty expression means nothing can match.
func ftsExpr(terms []string, fields []WeightedField, prefix bool) (expr, weights string, err error) {
	w := make(map[Field]float64, len(fields))
	var cols []string
	for _, f := range fields {
		if !f.Field.Valid() {
			return "", "", fmt.Errorf("unknown search field %q", f.Field)
		}
		if _, dup := w[f.Field]; !dup {
			cols = append(cols, string(f.Field))
		}
		w[f.Field] = f.Weight
	}

	var phrases []string
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		p := `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
		if prefix {
			p += "*"
		}
		phrases = append(phrases, p)
	}
	if len(cols) == 0 || len(phrases) == 0 {
		return "", "", nil
	}

	ws := make([]string, len(Fields))
	for i, f := range Fields {
		ws[i] = strconv.FormatFloat(w[f], 'f', -1, 64)
	}

	expr = "{" + strings.Join(cols, " ") + "} : (" + strings.Join(phrases, " ") + ")"
	return expr, strings.Join(ws, ", "), nil
}

// column returns the SQL expression reading f from alias p. Description is
// nullable, so it is coalesced to keep string functions well defined.
func column(f Field) (string, error) {
	switch f {
	case FieldName:
		return "p.name", nil
	case FieldDescription:
		return "coalesce(p.description, '')", nil
	default:
		return "", fmt.Errorf("unknown search field %q", f)
	}
}

// rankScanner appends a trailing rank column to a product scan.
type rankScanner struct {
	rows *sql.Rows
	rank any
}

func (r rankScanner) Scan(dest ...any) error {
	return r.rows.Scan(append(dest, r.rank)...)
}

// SimilarityQuery scores each product by the best similarity() over fields
// and keeps those at or above threshold, most similar first, ties by id.
// Any failure of the similarity function itself, including it not being
// registered on the connection, yields Unavailable with the cause attached.
// A cancelled context is still an error.
func (s *SQLiteStore) SimilarityQuery(ctx context.Context, term string, fields []Field, threshold float64) (Match, error) {
	if len(fields) == 0 || strings.TrimSpace(term) == "" {
		return matched(nil), nil
	}

	scores := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for _, f := range fields {
		col, err := column(f)
		if err != nil {
			return Match{}, err
		}
		scores = append(scores, similarityFunc+"(?, "+col+")")
		args = append(args, term)
	}
	score := scores[0]
	if len(scores) > 1 {
		score = "max(" + strings.Join(scores, ", ") + ")"
	}
	args = append(args, threshold)

	q := `SELECT ` + productColumns + `, p.score
		FROM (SELECT p.*, ` + score + ` AS score FROM products p) p
		WHERE p.score >= ?
		ORDER BY p.score DESC, p.id`

	ps, err := s.similarityRows(ctx, q, args)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Match{}, ctxErr
		}
		return unavailable(err), nil
	}
	return matched(ps), nil
}

func (s *SQLiteStore) similarityRows(ctx context.Context, q string, args []any) ([]Product, error) {
	rows, err := s.q.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ps []Product
	var rank float64
	for rows.Next() {
		p, err := scanProd(rankScanner{rows: rows, rank: &rank})
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, rows.Err()
}

// likeEscaper escapes LIKE wildcards so the term matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SubstringQuery returns products where any of fields contains term.
// Matching is case-insensitive for ASCII letters, as SQLite's LIKE is.
// Results are ordered by the first field, ignoring ASCII case, then id. With no fields the term
// constrains nothing and every product is returned in id order.
func (s *SQLiteStore) SubstringQuery(ctx context.Context, term string, fields []Field) ([]Product, error) {
	q := `SELECT ` + productColumns + ` FROM products p`
	var args []any

	if len(fields) == 0 {
		q += ` ORDER BY p.id`
	} else {
		pattern := "%" + likeEscaper.Replace(term) + "%"
		conds := make([]string, 0, len(fields))
		for _, f := range fields {
			col, err := column(f)
			if err != nil {
				return nil, err
			}
			conds = append(conds, col+` LIKE ? ESCAPE '\'`)
			args = append(args, pattern)
		}
		first, _ := column(fields[0])
		q += ` WHERE ` + strings.Join(conds, ` OR `) + ` ORDER BY ` + first + ` COLLATE NOCASE, p.id`
	}

	rows, err := s.q.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("substring query: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

