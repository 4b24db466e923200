// lowstock.go implements the "catalogd low-stock" command.

package search

import (
	"fmt"

	"github.com/jpl-au/catalogd/cmd"
	"github.com/jpl-au/catalogd/extension"
	"github.com/jpl-au/catalogd/internal/format"
	"github.com/jpl-au/catalogd/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newLowStockCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "low-stock",
		Short: "List products at or below a stock threshold",
		Long: `List products whose stock is at or below the threshold, lowest first.

  catalogd low-stock             # threshold from stock.low_threshold (default 10)
  catalogd low-stock -t 0        # out of stock only`,
		Args: cobra.NoArgs,
		RunE: e.runLowStock,
	}
	c.Flags().IntP(extension.FlagThreshold, "t", 0, "Stock threshold")
	return c
}

func (e *Extension) runLowStock(c *cobra.Command, _ []string) error {
	var threshold *int
	if c.Flags().Changed(extension.FlagThreshold) {
		t, _ := c.Flags().GetInt(extension.FlagThreshold)
		threshold = &t
	}

	res, err := e.svc.LowStock(c.Context(), threshold)

	l := log.Event("search:low-stock", "search").Author(cmd.Author())
	if res != nil {
		l.Detail("threshold", res.Threshold).Detail("count", len(res.Products))
	}
	l.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("low-stock: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(res.ToJSON())
	}
	if len(res.Products) == 0 {
		fmt.Fprintf(cmd.Out(), "No products at or below %d in stock\n", res.Threshold)
		return nil
	}
	if err := format.Table(cmd.Out(), res.Products); err != nil {
		return err
	}
	fmt.Fprintf(cmd.Out(), "\n%d product(s) at or below %d in stock\n", len(res.Products), res.Threshold)
	return nil
}
