// Package log provides centralised audit logging for catalogd operations.
// Logs are stored in ~/.catalogd/log/catalogd-log.db and record every CLI
// command, MCP tool call and HTTP mutation across catalogs.
//
// This is an audit trail, not operational logging: fallback warnings and
// server diagnostics go through log/slog.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("product:update", "update").
//		Author(cmd.Author()).
//		Product(id).
//		Write(err)
//
//	log.Event("search:search", "search").
//		Author(cmd.Author()).
//		Detail("query", req.Query).
//		Detail("filtered", res.FilteredCount).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}" for CLI
// commands, "mcp:{tool}" for MCP tools and "http:{route}" for API calls.
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source  string // e.g., "product:add", "mcp:catalog_search"
	Author  string // who performed the action
	Action  string // verb: search, create, update, delete, import, ...
	Product int64  // input: product id the operation targeted

	// Output: the product created or modified, when known.
	Result int64

	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write].
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "{extension}:{command}" (e.g., "product:add")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:catalog_find")
//   - HTTP API: "http:{route}" (e.g., "http:products.create")
//
// The action describes what was done: "search", "read", "create",
// "update", "delete", "import", "seed", "reindex", ...
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation. CLI commands pass the configured
// author; MCP and HTTP use "mcp" and "http".
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Product sets the id of the product the operation targets.
func (b *Builder) Product(id int64) *Builder {
	b.entry.Product = id
	return b
}

// Result sets the id of the product the operation produced, such as the id
// assigned by a create. Call after confirming success.
func (b *Builder) Result(id int64) *Builder {
	b.entry.Result = id
	return b
}

// Detail adds a key-value pair to the entry's detail map. Use for data that
// doesn't fit the standard fields: queries, counts, thresholds, file names.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry, deriving success/failure from err.
//
//	p, err := svc.Get(ctx, id)
//	log.Event("product:show", "read").Product(id).Write(err)
//	if err != nil {
//		return err
//	}
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// The dir should be the absolute path to the .catalogd directory.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
