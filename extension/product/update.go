// update.go implements the "catalogd update" command.
//
// Only flags that were given change. The command prints a line diff of the
// product before and after, coloured on a terminal.

package product

import (
	"fmt"
	"os"

	"github.com/jpl-au/catalogd/cmd"
	"github.com/jpl-au/catalogd/extension"
	"github.com/jpl-au/catalogd/internal/diff"
	"github.com/jpl-au/catalogd/internal/log"
	"github.com/jpl-au/catalogd/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (e *Extension) newUpdateCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a product",
		Long: `Change one or more attributes of a product.

  catalogd update 12 --stock 0
  catalogd update 12 --price 14.99 --name "Travel Mug (large)"

Prints a diff of the change.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runUpdate,
	}
	c.Flags().StringP(extension.FlagName, "n", "", "New name")
	c.Flags().StringP(extension.FlagDescription, "d", "", "New description")
	c.Flags().StringP(extension.FlagPrice, "p", "", "New price")
	c.Flags().IntP(extension.FlagStock, "s", 0, "New stock level")
	c.Flags().Bool(extension.FlagRaw, false, "Output without colour")
	return c
}

func (e *Extension) runUpdate(c *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	var u store.ProductUpdate
	flags := c.Flags()
	if flags.Changed(extension.FlagName) {
		v, _ := flags.GetString(extension.FlagName)
		u.Name = &v
	}
	if flags.Changed(extension.FlagDescription) {
		v, _ := flags.GetString(extension.FlagDescription)
		u.Description = &v
	}
	if flags.Changed(extension.FlagPrice) {
		v, _ := flags.GetString(extension.FlagPrice)
		if u.Price, err = parsePrice(v); err != nil {
			return cmd.PrintJSONError(err)
		}
	}
	if flags.Changed(extension.FlagStock) {
		v, _ := flags.GetInt(extension.FlagStock)
		u.Stock = &v
	}
	if u.Empty() {
		return cmd.PrintJSONError(fmt.Errorf("nothing to update: give at least one of --name, --description, --price, --stock"))
	}

	before, after, err := e.svc.Update(c.Context(), id, u, cmd.Author())

	log.Event("product:update", "update").Author(cmd.Author()).Product(id).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("update %d: %w", id, err))
	}

	r := diff.Products(before, after)
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{
			"product": after.ToJSON(),
			"diff":    r.Diff,
		})
	}
	if !r.Changed() {
		fmt.Fprintf(cmd.Out(), "Product %d unchanged\n", id)
		return nil
	}
	raw, _ := flags.GetBool(extension.FlagRaw)
	colour := !raw && term.IsTerminal(int(os.Stdout.Fd()))
	fmt.Fprint(cmd.Out(), r.Format(colour))
	return nil
}
