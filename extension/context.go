// context.go defines the Context interface through which extensions reach
// the catalog.
//
// Separated from extension.go to isolate dependency injection concerns.
// Extensions receive a Context during Init(), after registration, because
// they register before the catalog has been discovered and opened.

package extension

import (
	"database/sql"
	"log/slog"

	"github.com/jpl-au/catalogd/internal/config"
	"github.com/jpl-au/catalogd/internal/service"
)

// Context provides extensions controlled access to catalogd internals.
type Context interface {
	// Service returns the catalog service for search and product operations.
	Service() service.Service

	// DB exposes the database for extensions needing custom tables.
	// Extensions should create their own tables, not modify products.
	DB() *sql.DB

	// Config returns user configuration.
	Config() *config.Config

	// Logger returns the operational logger.
	Logger() *slog.Logger
}

type extContext struct {
	svc service.Service
	db  *sql.DB
	cfg *config.Config
	log *slog.Logger
}

// NewContext creates a new extension context. A nil logger uses slog.Default().
func NewContext(svc service.Service, db *sql.DB, cfg *config.Config, logger *slog.Logger) Context {
	if logger == nil {
		logger = slog.Default()
	}
	return &extContext{svc: svc, db: db, cfg: cfg, log: logger}
}

func (c *extContext) Service() service.Service { return c.svc }
func (c *extContext) DB() *sql.DB              { return c.db }
func (c *extContext) Config() *config.Config   { return c.cfg }
func (c *extContext) Logger() *slog.Logger     { return c.log }
