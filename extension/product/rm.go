// rm.go implements the "catalogd rm" command for deleting products.
//
// Deletion is permanent, so rm asks for confirmation unless --force is set
// or output is JSON.

package product

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jpl-au/catalogd/cmd"
	"github.com/jpl-au/catalogd/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a product",
		Long:  `Permanently delete a product. Use --force to skip confirmation.`,
		Args:  cobra.ExactArgs(1),
		RunE:  e.runRm,
	}
}

func (e *Extension) runRm(c *cobra.Command, args []string) error {
	ctx := c.Context()
	id, err := parseID(args[0])
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	if !cmd.Force() && !cmd.JSON() {
		p, err := e.svc.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("rm %d: %w", id, err)
		}
		fmt.Fprintf(cmd.Out(), "Delete product %d (%s)? This cannot be undone. [y/N] ", id, p.Name)
		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading confirmation: %w", err)
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(cmd.Out(), "Cancelled")
			return nil
		}
	}

	p, err := e.svc.Delete(ctx, id, cmd.Author())

	log.Event("product:rm", "delete").Author(cmd.Author()).Product(id).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("rm %d: %w", id, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"deleted": p.ToJSON()})
	}
	fmt.Fprintf(cmd.Out(), "Deleted product %d (%s)\n", p.ID, p.Name)
	return nil
}
