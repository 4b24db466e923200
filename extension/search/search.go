// Package search provides the catalog query commands and their MCP tools.
// Registers commands: search (full pipeline), find (quick search) and
// low-stock. Contributes MCP tools: catalog_search, catalog_find,
// catalog_low_stock.
package search

import (
	"github.com/jpl-au/catalogd/extension"
	"github.com/jpl-au/catalogd/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the search extension.
type Extension struct {
	svc service.Service
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "search" - this extension provides product discovery commands.
func (e *Extension) Name() string { return "search" }

// Init connects to the shared service for search operations.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns search, find and low-stock.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newSearchCmd(),
		e.newFindCmd(),
		e.newLowStockCmd(),
	}
}

// MCPTools returns the query tools. Handlers reach the catalog through the
// extension context, so they work in an MCP server that never ran Init.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{
		searchTool(),
		findTool(),
		lowStockTool(),
	}
}
