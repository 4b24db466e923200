// find.go implements the "catalogd find" command: quick search.
//
// Quick search runs only the text-matching cascade, with no filters or
// sorting, and returns at most search.quick_limit products in match order.
// It is the command to reach for when you know roughly what a product is
// called.

package search

import (
	"fmt"

	"github.com/jpl-au/catalogd/cmd"
	"github.com/jpl-au/catalogd/extension"
	"github.com/jpl-au/catalogd/internal/format"
	"github.com/jpl-au/catalogd/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newFindCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "find <query>",
		Short: "Quick search by name and description",
		Long: `Quick search. Products come back in match order: best full-text rank,
or highest similarity when the query only matches approximately.

  catalogd find "usb cable"
  catalogd find mug --limit 3`,
		Args: cobra.ExactArgs(1),
		RunE: e.runFind,
	}
	c.Flags().Int(extension.FlagLimit, 0, "Maximum results (default from search.quick_limit)")
	c.Flags().BoolP(extension.FlagNamesOnly, "l", false, "Only output product names")
	return c
}

func (e *Extension) runFind(c *cobra.Command, args []string) error {
	query := args[0]
	var limit *int
	if c.Flags().Changed(extension.FlagLimit) {
		n, _ := c.Flags().GetInt(extension.FlagLimit)
		limit = &n
	}
	namesOnly, _ := c.Flags().GetBool(extension.FlagNamesOnly)

	res, err := e.svc.Quick(c.Context(), query, limit)

	l := log.Event("search:find", "search").
		Author(cmd.Author()).
		Detail("query", query)
	if res != nil {
		l.Detail("count", len(res.Products)).Detail("strategy", res.Strategy.String())
	}
	l.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("find %q: %w", query, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(res.ToJSON())
	}
	if namesOnly {
		return format.Names(cmd.Out(), res.Products)
	}
	return format.QuickResult(cmd.Out(), res)
}
