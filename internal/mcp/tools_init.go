// tools_init.go implements the MCP tool for initialising a new catalog.
//
// This tool works without an existing catalog, allowing LLMs to bootstrap
// one. Other tools require initialisation first.

package mcp

import (
	"context"

	"github.com/jpl-au/catalogd/internal/catalog"
	"github.com/jpl-au/catalogd/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// initCatalog handles catalog_init tool calls.
func (h *handlers) initCatalog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	if _, res := h.service(); res == nil {
		return mcp.NewToolResultError("catalog already initialised"), nil
	}

	local := getBool(req, "local", false)

	dbPath, err := catalog.Init(false, h.db, local, h.dir)

	log.Event("mcp:catalog_init", "init").Author("mcp").Detail("local", local).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	svc, err := catalog.Open(dbPath, h.log)
	if err != nil {
		return mcp.NewToolResultError("init succeeded but failed to open catalog: " + err.Error()), nil
	}
	if err := h.attach(svc); err != nil {
		svc.Close()
		return mcp.NewToolResultError("init succeeded but failed to load extensions: " + err.Error()), nil
	}
	log.SetProject(svc.Dir())

	h.log.Info("catalog initialised", "path", dbPath, "local", local)

	if local {
		return mcp.NewToolResultText("catalog initialised (local - gitignored)"), nil
	}
	return mcp.NewToolResultText("catalog initialised"), nil
}
