// query.go implements the "catalogd search" command: the full pipeline of
// text matching, filters, sorting and pagination.
//
// Flags are collected as strings and parsed by search.Params, the same
// path the HTTP API takes, so both surfaces reject the same input.

package search

import (
	"fmt"
	"strings"

	"github.com/jpl-au/catalogd/cmd"
	"github.com/jpl-au/catalogd/extension"
	"github.com/jpl-au/catalogd/internal/format"
	"github.com/jpl-au/catalogd/internal/log"
	"github.com/jpl-au/catalogd/internal/search"
	"github.com/spf13/cobra"
)

func (e *Extension) newSearchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "search [query]",
		Short: "Search, filter, sort and page through products",
		Long: fmt.Sprintf(`Search the catalog.

  catalogd search laptop
  catalogd search laptop --in-stock --max-price 1000 --sort price_asc
  catalogd search --sort newest --limit 5
  catalogd search "wireles mouse"      # typos fall back to similarity

With a query, products are matched by full-text search first, then prefix,
similarity and substring matching, stopping at the first that finds
anything. Without one every product matches.

Sort keys: %s (default name).
See 'catalogd guide search' for details.`, strings.Join(search.SortKeys, ", ")),
		Args: cobra.MaximumNArgs(1),
		RunE: e.runSearch,
	}
	c.Flags().Bool(extension.FlagInStock, false, "Only products in stock")
	c.Flags().String(extension.FlagMinPrice, "", "Minimum price")
	c.Flags().String(extension.FlagMaxPrice, "", "Maximum price")
	c.Flags().String(extension.FlagSort, "", "Sort key")
	c.Flags().String(extension.FlagLimit, "", "Page size (default from search.default_limit)")
	c.Flags().String(extension.FlagOffset, "", "Skip this many products")
	c.Flags().BoolP(extension.FlagNamesOnly, "l", false, "Only output product names")
	return c
}

func (e *Extension) runSearch(c *cobra.Command, args []string) error {
	flags := c.Flags()
	p := search.Params{}
	if len(args) > 0 {
		p.Query = args[0]
	}
	if inStock, _ := flags.GetBool(extension.FlagInStock); inStock {
		p.InStock = "true"
	}
	p.MinPrice, _ = flags.GetString(extension.FlagMinPrice)
	p.MaxPrice, _ = flags.GetString(extension.FlagMaxPrice)
	p.SortBy, _ = flags.GetString(extension.FlagSort)
	p.Limit, _ = flags.GetString(extension.FlagLimit)
	p.Offset, _ = flags.GetString(extension.FlagOffset)
	namesOnly, _ := flags.GetBool(extension.FlagNamesOnly)

	req, err := p.Parse()
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	res, err := e.svc.Search(c.Context(), req)

	l := log.Event("search:search", "search").
		Author(cmd.Author()).
		Detail("query", req.Query).
		Detail("sort", req.SortBy)
	if res != nil {
		l.Detail("filtered", res.FilteredCount).Detail("strategy", res.Strategy.String())
	}
	l.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("search: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(res.ToJSON())
	}
	if namesOnly {
		return format.Names(cmd.Out(), res.Products)
	}
	offset := 0
	if req.Offset != nil {
		offset = *req.Offset
	}
	return format.SearchResult(cmd.Out(), res, offset)
}
