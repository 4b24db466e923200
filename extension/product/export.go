// export.go implements the "catalogd export" command.

package product

import (
	"fmt"
	"io"

	"github.com/jpl-au/catalogd/cmd"
	"github.com/jpl-au/catalogd/extension"
	"github.com/jpl-au/catalogd/internal/exporter"
	"github.com/jpl-au/catalogd/internal/log"
	"github.com/jpl-au/catalogd/internal/search"
	"github.com/spf13/cobra"
)

func (e *Extension) newExportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "export <file> [query]",
		Short: "Export products to a YAML or JSON file",
		Long: `Write products to a .yaml, .yml or .json file in the format import reads.

  catalogd export backup.yaml
  catalogd export laptops.json laptop --in-stock
  catalogd export cheap.yaml --max-price 20 --sort price_asc

The query and filters select products the same way search does; every
match is written, not just one page.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runExport,
	}
	c.Flags().Bool(extension.FlagInStock, false, "Only products in stock")
	c.Flags().String(extension.FlagMinPrice, "", "Minimum price")
	c.Flags().String(extension.FlagMaxPrice, "", "Maximum price")
	c.Flags().String(extension.FlagSort, "", "Sort key (default name)")
	return c
}

func (e *Extension) runExport(c *cobra.Command, args []string) error {
	dst := args[0]
	p := search.Params{}
	if len(args) > 1 {
		p.Query = args[1]
	}
	if inStock, _ := c.Flags().GetBool(extension.FlagInStock); inStock {
		p.InStock = "true"
	}
	p.MinPrice, _ = c.Flags().GetString(extension.FlagMinPrice)
	p.MaxPrice, _ = c.Flags().GetString(extension.FlagMaxPrice)
	p.SortBy, _ = c.Flags().GetString(extension.FlagSort)

	req, err := p.Parse()
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}
	res, err := exporter.Run(c.Context(), w, e.svc, dst, exporter.Options{Request: req, Force: cmd.Force()})

	log.Event("product:export", "export").
		Author(cmd.Author()).
		Detail("path", dst).
		Detail("query", req.Query).
		Detail("count", res.Exported).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("export: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"path": res.Path, "exported": res.Exported})
	}
	return nil
}
