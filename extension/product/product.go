// Package product provides the product extension: single-product CRUD and
// bulk loading. Registers commands: add, show, update, rm, import, export,
// seed.
//
// Each command file is separated to isolate its flag handling and output
// formatting.

package product

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jpl-au/catalogd/extension"
	"github.com/jpl-au/catalogd/internal/service"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the product extension.
type Extension struct {
	svc service.Service
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Storeless     = (*Extension)(nil)
	_ extension.EventHandler  = (*Extension)(nil)
)

// Name returns "product".
func (e *Extension) Name() string { return "product" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the product commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newAddCmd(),
		e.newShowCmd(),
		e.newUpdateCmd(),
		e.newRmCmd(),
		newImportCmd(),
		e.newExportCmd(),
		e.newSeedCmd(),
	}
}

// MCPTools returns nil - product MCP tools are in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoStoreCommands returns commands that manage their own service lifecycle.
// import: --dry-run must work without a catalog.
func (e *Extension) NoStoreCommands() []string {
	return []string{"import"}
}

// HandleEvent reports catalog changes on the operational log. With
// --verbose this shows what a command changed, including writes made
// through the MCP server or HTTP API.
func (e *Extension) HandleEvent(ctx extension.Context, evt extension.Event) error {
	switch ev := evt.(type) {
	case extension.ProductEvent:
		ctx.Logger().Debug("product changed", "event", ev.Type, "id", ev.ID, "name", ev.Name, "author", ev.Author)
	case extension.ImportEvent:
		ctx.Logger().Debug("catalog imported", "count", ev.Count, "author", ev.Author)
	}
	return nil
}

// parseID parses a product id argument.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid product id %q", s)
	}
	return id, nil
}

var errNoPrice = errors.New("--price is required")

// parsePrice parses a price flag. Range checks are left to validation so
// the message matches every other entry point.
func parsePrice(s string) (*decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errNoPrice
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("price must be a number, got %q", s)
	}
	return &d, nil
}
