// Package catalog provides the catalog service: it wires configuration,
// the SQLite store and the search engine together and exposes them as a
// service.Service for commands, extensions, the MCP server and the HTTP API.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/jpl-au/catalogd/extension"
	"github.com/jpl-au/catalogd/internal/config"
	"github.com/jpl-au/catalogd/internal/log"
	"github.com/jpl-au/catalogd/internal/repo"
	"github.com/jpl-au/catalogd/internal/search"
	"github.com/jpl-au/catalogd/internal/service"
	"github.com/jpl-au/catalogd/internal/store"
)

// DefaultAuthor is recorded when a write has no author.
const DefaultAuthor = "unknown"

var _ service.Service = (*Service)(nil)

// Service implements service.Service on top of a SQLite store.
type Service struct {
	store  *store.SQLiteStore
	dbPath string
	dir    string
	log    *slog.Logger

	mu       sync.RWMutex // guards engine and settings on ReloadConfig
	engine   *search.Engine
	quick    int
	lowStock int

	extCtx extension.Context
}

// New locates the catalog database, opens it and applies pending schema.
// The db parameter names the database (empty for default). With dir empty
// the database is discovered by walking up the directory tree; otherwise
// it must be in dir/.catalogd. Returns repo.ErrNotInitialised if none is found.
func New(db, dir string) (*Service, error) {
	dbPath, err := repo.Locate(db, dir)
	if err != nil {
		return nil, err
	}
	return Open(dbPath, nil)
}

// Open opens the catalog at dbPath directly. A nil logger uses slog.Default().
func Open(dbPath string, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err // config.Load provides detailed, actionable error messages
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		s.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	svc := &Service{
		store:  s,
		dbPath: dbPath,
		dir:    filepath.Dir(dbPath),
		log:    logger,
	}
	svc.apply(cfg)
	return svc, nil
}

// Init initialises a new catalog and returns the database path.
// See repo.Init for the parameters.
func Init(force bool, db string, local bool, dir string) (string, error) {
	return repo.Init(force, db, local, dir)
}

// Options derives engine options from configuration.
func Options(cfg *config.Config) search.Options {
	names := cfg.SearchFields()
	fields := make([]store.Field, 0, len(names))
	for _, n := range names {
		fields = append(fields, store.Field(n))
	}
	return search.Options{
		Fields: fields,
		Weights: map[store.Field]float64{
			store.FieldName:        cfg.NameWeight(),
			store.FieldDescription: cfg.DescriptionWeight(),
		},
		Prefix:       cfg.PrefixSearch(),
		Similarity:   cfg.SimilaritySearch(),
		Threshold:    cfg.SimilarityThreshold(),
		DefaultLimit: cfg.DefaultLimit(),
	}
}

func (s *Service) apply(cfg *config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine = search.New(s.store, Options(cfg), s.log)
	s.quick = cfg.QuickLimit()
	s.lowStock = cfg.LowStockThreshold()
}

// Close checkpoints the WAL and closes the database connection.
func (s *Service) Close() error {
	if err := s.store.Checkpoint(context.Background()); err != nil {
		log.Event("service:close", "checkpoint").
			Detail("error", err.Error()).
			Write(err)
	}
	return s.store.Close()
}

// ReloadConfig reloads configuration from disk and rebuilds the engine.
// Call this after modifying config so the service uses the new settings.
func (s *Service) ReloadConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	s.apply(cfg)
	return nil
}

// SetExtensionContext sets the extension context for firing events.
func (s *Service) SetExtensionContext(ctx extension.Context) {
	s.extCtx = ctx
}

// fireEvent notifies every registered extension event handler. Handler
// errors are logged, never returned: events cannot veto a committed change.
func (s *Service) fireEvent(e extension.Event) {
	if s.extCtx == nil {
		return
	}
	for _, ext := range extension.All() {
		if h, ok := ext.(extension.EventHandler); ok {
			if err := h.HandleEvent(s.extCtx, e); err != nil {
				log.Event("event:error", "error").
					Detail("ext", ext.Name()).
					Detail("event", string(e.EventType())).
					Write(err)
			}
		}
	}
}

// Dir returns the .catalogd directory holding the database.
func (s *Service) Dir() string {
	return s.dir
}

// DB returns the underlying database connection for extensions.
func (s *Service) DB() *sql.DB {
	return s.store.DB()
}

func author(a string) string {
	if a == "" {
		return DefaultAuthor
	}
	return a
}
