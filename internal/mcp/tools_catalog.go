// tools_catalog.go implements MCP tools for catalog-wide operations: bulk
// import, statistics and index maintenance.
//
// Import reads from the local filesystem, so it supports dry-run for LLMs to
// validate a file before committing it.

package mcp

import (
	"bytes"
	"context"

	"github.com/jpl-au/catalogd/internal/importer"
	"github.com/jpl-au/catalogd/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// importProducts handles catalog_import tool calls.
func (h *handlers) importProducts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.service()
	if res != nil {
		return res, nil
	}
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author is required"), nil //nolint:nilerr
	}

	opts := importer.Options{
		DryRun: getBool(req, "dry_run", false),
		Author: author,
	}

	var buf bytes.Buffer
	result, err := importer.Run(ctx, &buf, svc, path, opts)

	log.Event("mcp:catalog_import", "import").Author(author).Detail("source", path).Detail("count", result.Imported).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"files":    result.Files,
		"products": result.Products,
		"imported": result.Imported,
		"dry_run":  opts.DryRun,
	})
}

// stats handles catalog_stats tool calls.
func (h *handlers) stats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.service()
	if res != nil {
		return res, nil
	}

	st, err := svc.Stats(ctx)

	log.Event("mcp:catalog_stats", "read").Author("mcp").Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(st)
}

// reindex handles catalog_reindex tool calls.
func (h *handlers) reindex(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.service()
	if res != nil {
		return res, nil
	}

	drop := getBool(req, "drop", false)
	var err error
	if drop {
		err = svc.DropIndex(ctx)
	} else {
		err = svc.Reindex(ctx)
	}

	log.Event("mcp:catalog_reindex", "reindex").Author("mcp").Detail("drop", drop).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if drop {
		return mcp.NewToolResultText("full-text index dropped"), nil
	}
	return mcp.NewToolResultText("full-text index rebuilt"), nil
}
