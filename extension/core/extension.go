// Package core provides the core extension for catalogd.
// It registers commands: init, config, serve, http, guide, llm, version,
// stats, reindex.
package core

import (
	"github.com/jpl-au/catalogd/extension"
	"github.com/jpl-au/catalogd/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct {
	svc service.Service
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Storeless     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "core" - this extension provides fundamental catalogd commands.
func (e *Extension) Name() string { return "core" }

// Init connects to the shared service for stats and reindex.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns all core CLI commands for catalog management.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newServeCmd(),
		newHTTPCmd(),
		newGuideCmd(),
		newLlmCmd(),
		newVersionCmd(),
		e.newStatsCmd(),
		e.newReindexCmd(),
	}
}

// MCPTools returns nil - core operations are registered by internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoStoreCommands returns commands that manage their own service lifecycle.
// serve: Long-running MCP server, starts even without a catalog.
// http: Long-running HTTP server owns its service.
// version: Displays build info, doesn't need database connection.
func (e *Extension) NoStoreCommands() []string {
	return []string{"serve", "http", "version"}
}
