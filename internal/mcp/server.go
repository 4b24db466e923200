// Package mcp implements the Model Context Protocol server, exposing the
// catalog to LLMs. Assistants can search products, inspect stock and
// maintain product records through a standardised protocol.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"

	"github.com/jpl-au/catalogd/extension"
	"github.com/jpl-au/catalogd/internal/catalog"
	"github.com/jpl-au/catalogd/internal/config"
	"github.com/jpl-au/catalogd/internal/repo"
	"github.com/jpl-au/catalogd/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// ErrNotInitialised is returned by tools when the catalog has not been initialised.
// The LLM should call catalog_init to create one before using other tools.
const ErrNotInitialised = "catalog not initialised - call catalog_init first"

// Serve starts the MCP server over stdio, enabling LLM integration.
// Uses stdio transport for compatibility with Claude Desktop and other MCP clients.
//
// Design: the server starts even if no catalog exists, so an LLM can call
// catalog_init rather than failing with an opaque error. Tools that need the
// catalog return ErrNotInitialised until then.
func Serve(db, dir string) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	h := &handlers{db: db, dir: dir, log: logger}

	svc, err := catalog.New(db, dir)
	if err != nil && !errors.Is(err, repo.ErrNotInitialised) {
		slog.Error("failed to open catalog", "error", err)
		return err
	}
	if err == nil {
		if err := h.attach(svc); err != nil {
			svc.Close()
			return err
		}
		defer svc.Close()
	} else {
		slog.Info("catalogd not initialised, starting in uninitialised mode - call catalog_init to create a catalog")
	}

	s := newServer(h)
	slog.Info("catalogd MCP server ready", "version", Version, "transport", "stdio")

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// newServer builds the MCP server with core and extension tools registered.
func newServer(h *handlers) *server.MCPServer {
	s := server.NewMCPServer(
		"catalogd",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)
	registerResources(s, h)
	registerTools(s, h)
	registerExtensionTools(s, h)
	return s
}

// handlers provides MCP request handlers with access to the catalog.
// The svc field is nil until a catalog has been opened.
type handlers struct {
	db  string // database name for init
	dir string // target directory for init, empty for the working directory
	log *slog.Logger

	mu     sync.RWMutex
	svc    service.Service
	extCtx extension.Context
}

// attach installs svc and hands the extensions a context for it.
func (h *handlers) attach(svc *catalog.Service) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx := extension.NewContext(svc, svc.DB(), cfg, h.log)
	svc.SetExtensionContext(ctx)
	for _, ext := range extension.All() {
		if init, ok := ext.(extension.Initializable); ok {
			if err := init.Init(ctx); err != nil {
				return err
			}
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.svc = svc
	h.extCtx = ctx
	return nil
}

// service returns the open catalog, or a tool error result when there is none.
func (h *handlers) service() (service.Service, *mcp.CallToolResult) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.svc == nil {
		return nil, mcp.NewToolResultError(ErrNotInitialised)
	}
	return h.svc, nil
}

// registerResources adds URI-based resource access for direct product reading.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"catalogd://products/{id}",
			"Product",
			mcp.WithTemplateDescription("Read a product by id"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		h.readProduct,
	)
}

// registerTools exposes core catalog operations as MCP tools.
func registerTools(s *server.MCPServer, h *handlers) {
	// Init - works without an existing catalog
	s.AddTool(
		mcp.NewTool("catalog_init",
			mcp.WithDescription("Initialise a new product catalog. Call this first if other tools return 'catalog not initialised'."),
			mcp.WithBoolean("local", mcp.Description("If true, database is gitignored (not committed to version control)")),
		),
		h.initCatalog,
	)

	s.AddTool(
		mcp.NewTool("product_get",
			mcp.WithDescription("Get a product by id"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Product id")),
		),
		h.getProduct,
	)

	s.AddTool(
		mcp.NewTool("product_create",
			mcp.WithDescription("Create a product. Name is 2-255 characters, price greater than 0 with at most 2 decimal places, stock 0 or more."),
			mcp.WithString("name", mcp.Required(), mcp.Description("Product name")),
			mcp.WithString("description", mcp.Description("Product description")),
			mcp.WithString("price", mcp.Required(), mcp.Description("Price as a decimal string, e.g. \"19.99\"")),
			mcp.WithNumber("stock", mcp.Description("Units in stock (default 0)")),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
		),
		h.createProduct,
	)

	s.AddTool(
		mcp.NewTool("product_update",
			mcp.WithDescription("Update a product. Only the given fields change. Returns the product and a diff of the change."),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Product id")),
			mcp.WithString("name", mcp.Description("New name")),
			mcp.WithString("description", mcp.Description("New description")),
			mcp.WithString("price", mcp.Description("New price as a decimal string")),
			mcp.WithNumber("stock", mcp.Description("New stock level")),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
		),
		h.updateProduct,
	)

	s.AddTool(
		mcp.NewTool("product_delete",
			mcp.WithDescription("Permanently delete a product"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Product id")),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
		),
		h.deleteProduct,
	)

	s.AddTool(
		mcp.NewTool("catalog_stats",
			mcp.WithDescription("Product count, stock distribution (out, 1-5, 6-20, over 20), price range and whether the text index exists"),
		),
		h.stats,
	)

	s.AddTool(
		mcp.NewTool("catalog_import",
			mcp.WithDescription("Import products from a YAML or JSON file, or a directory of them. Nothing is written if any product is invalid."),
			mcp.WithString("path", mcp.Required(), mcp.Description("Filesystem path to import from")),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
			mcp.WithBoolean("dry_run", mcp.Description("Validate without importing")),
		),
		h.importProducts,
	)

	s.AddTool(
		mcp.NewTool("catalog_reindex",
			mcp.WithDescription("Rebuild the full-text index, or drop it to force similarity/substring matching"),
			mcp.WithBoolean("drop", mcp.Description("Drop the index instead of rebuilding it")),
		),
		h.reindex,
	)

	s.AddTool(
		mcp.NewTool("config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key (e.g. search.similarity_threshold) or empty for all")),
		),
		h.configGet,
	)

	s.AddTool(
		mcp.NewTool("config_set",
			mcp.WithDescription("Set a configuration value. Search settings apply immediately."),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key (e.g. search.default_limit)")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to set")),
		),
		h.configSet,
	)

	s.AddTool(
		mcp.NewTool("catalog_guide",
			mcp.WithDescription("Get help/guide content for catalogd commands"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g., 'search', 'config') or empty for index")),
		),
		h.getGuide,
	)
}

// registerExtensionTools adds the tools contributed by extensions. Each
// handler receives the extension context of the open catalog.
func registerExtensionTools(s *server.MCPServer, h *handlers) {
	for _, ext := range extension.All() {
		for _, t := range ext.MCPTools() {
			s.AddTool(t.Tool, h.wrap(t.Handler))
		}
	}
}

func (h *handlers) wrap(fn extension.MCPHandler) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if _, res := h.service(); res != nil {
			return res, nil
		}
		h.mu.RLock()
		extCtx := h.extCtx
		h.mu.RUnlock()
		return fn(ctx, extCtx, req)
	}
}
