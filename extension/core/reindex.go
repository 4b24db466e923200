// reindex.go implements the "catalogd reindex" command for full-text index
// maintenance.
//
// Reindex rebuilds the index from the products table. --drop removes it,
// which sends every search through similarity and substring matching until
// the next reindex; it asks for confirmation unless --force is given.

package core

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jpl-au/catalogd/cmd"
	"github.com/jpl-au/catalogd/extension"
	"github.com/jpl-au/catalogd/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newReindexCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild or drop the full-text index",
		Long: `Rebuild the full-text index.

  catalogd reindex           # create if missing, then rebuild
  catalogd reindex --drop    # remove it; searches fall back to similarity/substring`,
		Args: cobra.NoArgs,
		RunE: e.runReindex,
	}
	c.Flags().Bool(extension.FlagDrop, false, "Drop the index instead of rebuilding it")
	return c
}

func (e *Extension) runReindex(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	drop, _ := c.Flags().GetBool(extension.FlagDrop)

	if drop && !cmd.Force() && !cmd.JSON() {
		fmt.Fprint(cmd.Out(), "Drop the full-text index? Searches will use slower fallbacks until reindex. [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("reading confirmation: %w", err))
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(cmd.Out(), "Cancelled")
			return nil
		}
	}

	var err error
	if drop {
		err = e.svc.DropIndex(ctx)
	} else {
		err = e.svc.Reindex(ctx)
	}

	log.Event("core:reindex", "reindex").
		Author(cmd.Author()).
		Detail("drop", drop).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("reindex: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]bool{"indexed": !drop})
	}
	if drop {
		fmt.Fprintln(cmd.Out(), "Full-text index dropped")
	} else {
		fmt.Fprintln(cmd.Out(), "Full-text index rebuilt")
	}
	return nil
}
