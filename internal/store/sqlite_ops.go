// sqlite_ops.go provides SQLite connection management and low-level operations.
//
// Separated to isolate SQLite-specific concerns (pragmas, driver registration,
// custom SQL functions) from catalog logic. This is the only file that imports
// the SQLite driver, making it easier to swap implementations if needed.
//
// Design: WAL mode with busy timeout balances concurrency and durability.
// WAL allows concurrent readers during writes, so the HTTP API and MCP server
// can search while an import is running. The 5-second busy timeout prevents
// "database is locked" errors without waiting forever on stuck connections.

package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sync"

	"github.com/jpl-au/catalogd/internal/trigram"
	"github.com/shopspring/decimal"
	"modernc.org/sqlite"
)

// similarityFunc is the SQL name of the registered trigram scorer.
const similarityFunc = "similarity"

var registerOnce sync.Once
var registerErr error

// registerFunctions installs the similarity() scalar function on every
// connection the driver opens. Registration is process-wide in modernc, so
// it happens once regardless of how many stores are opened.
func registerFunctions() error {
	registerOnce.Do(func() {
		registerErr = sqlite.RegisterDeterministicScalarFunction(similarityFunc, 2, similarity)
	})
	return registerErr
}

// similarity(a, b) returns the trigram similarity of two text values.
// NULL behaves as the empty string.
func similarity(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	return trigram.Similarity(text(args[0]), text(args[1])), nil
}

func text(v driver.Value) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return ""
	}
}

// dbtx is satisfied by both *sql.DB and *sql.Tx, letting read methods run
// either directly or inside a View snapshot.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLiteStore implements Store using SQLite with WAL mode for concurrent access.
// Full-text search is provided by an FTS5 index and fuzzy matching by the
// registered similarity() function.
type SQLiteStore struct {
	db *sql.DB
	q  dbtx
}

// Compile-time interface compliance check. If a method is missing or has the
// wrong signature, the build fails here rather than at the call site.
var _ Store = (*SQLiteStore)(nil)

// Open opens the SQLite database file at `path` and returns a configured
// SQLiteStore. The caller should call Close on the returned store.
func Open(path string) (*SQLiteStore, error) {
	if err := registerFunctions(); err != nil {
		return nil, fmt.Errorf("register sql functions: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	// WAL mode: readers do not block the writer and vice versa.
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// With WAL, NORMAL is safe against corruption; only the last commit
	// can be lost on an OS crash.
	if _, err := db.Exec(`PRAGMA synchronous=NORMAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting synchronous mode: %w", err)
	}

	return &SQLiteStore{db: db, q: db}, nil
}

// Init creates tables and indexes if they don't exist. Safe to call multiple
// times. The full-text index is only created for an empty catalog; see
// schema.go for why a dropped index is left alone.
func (s *SQLiteStore) Init() error {
	if err := execSchema(s.db); err != nil {
		return err
	}
	ctx := context.Background()
	ok, err := s.Indexed(ctx)
	if err != nil || ok {
		return err
	}
	n, err := s.CountAll(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return execIndexSchema(s.db)
}

// Close releases the database connection. Call before program exit to ensure
// all pending writes are flushed.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection for extensions that need custom tables.
// Extensions should not modify core tables directly.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// View runs fn against a read transaction so every query it issues observes
// the same snapshot of the catalog.
func (s *SQLiteStore) View(ctx context.Context, fn func(Searcher) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin read: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	return fn(&SQLiteStore{db: s.db, q: tx})
}

// Tx executes fn within a database transaction, handling Begin/Commit/Rollback
// automatically. If fn returns an error the transaction is rolled back;
// otherwise it is committed. Rollback is deferred to cover panics and early
// returns, and is a no-op after commit.
//
//	err := s.Tx(ctx, func(tx *sql.Tx) error {
//	    if _, err := tx.ExecContext(ctx, `UPDATE ...`); err != nil {
//	        return err  // triggers rollback
//	    }
//	    return nil  // triggers commit
//	})
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// productColumns is the column list every product query selects, in the
// order scanProduct expects.
const productColumns = `p.id, p.name, p.description, p.price_cents, p.stock, p.created_at, p.updated_at`

// scanner abstracts sql.Row and sql.Rows, enabling a single scan function
// to handle both single-row and multi-row queries.
type scanner interface {
	Scan(dest ...any) error
}

// scanProd extracts a Product from a database row, handling nullable fields.
func scanProd(sc scanner) (Product, error) {
	var p Product
	var desc sql.NullString
	var cents int64

	if err := sc.Scan(&p.ID, &p.Name, &desc, &cents, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return p, err
	}
	p.Description = desc.String
	p.Price = fromCents(cents)
	return p, nil
}

// scanProduct converts sql.ErrNoRows to ErrNotFound for consistent error handling.
func scanProduct(row *sql.Row) (*Product, error) {
	p, err := scanProd(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}

// scanProducts iterates over query results, collecting products into a
// slice. Extra trailing columns (such as a rank) must be handled by the
// caller's own scan loop.
func scanProducts(rows *sql.Rows) ([]Product, error) {
	var ps []Product
	for rows.Next() {
		p, err := scanProd(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		ps = append(ps, p)
	}
	return ps, rows.Err()
}

func toCents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

func fromCents(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}
