// stats.go implements the "catalogd stats" command: product count, stock
// distribution and price range.

package core

import (
	"fmt"

	"github.com/jpl-au/catalogd/cmd"
	"github.com/jpl-au/catalogd/internal/format"
	"github.com/jpl-au/catalogd/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarise stock levels and prices",
		Long: `Show the product count, how many products are out of stock, low (1-5),
medium (6-20) and well stocked (over 20), the price range, and whether the
full-text index exists.`,
		Args: cobra.NoArgs,
		RunE: e.runStats,
	}
}

func (e *Extension) runStats(c *cobra.Command, _ []string) error {
	st, err := e.svc.Stats(c.Context())

	log.Event("core:stats", "read").Author(cmd.Author()).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("stats: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(st)
	}
	return format.Stats(cmd.Out(), st)
}
