// add.go implements the "catalogd add" command for creating products.

package product

import (
	"fmt"

	"github.com/jpl-au/catalogd/cmd"
	"github.com/jpl-au/catalogd/extension"
	"github.com/jpl-au/catalogd/internal/format"
	"github.com/jpl-au/catalogd/internal/log"
	"github.com/jpl-au/catalogd/internal/store"
	"github.com/spf13/cobra"
)

func (e *Extension) newAddCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a product",
		Long: `Add a product to the catalog.

  catalogd add "Travel Mug" --price 12.50 --stock 40
  catalogd add "Desk Lamp" -p 30 -d "LED, adjustable arm"

Names are 2-255 characters. Prices must be greater than 0 with at most two
decimal places. Stock defaults to 0.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runAdd,
	}
	c.Flags().StringP(extension.FlagPrice, "p", "", "Price (e.g., 19.99)")
	c.Flags().StringP(extension.FlagDescription, "d", "", "Description")
	c.Flags().IntP(extension.FlagStock, "s", 0, "Units in stock")
	return c
}

func (e *Extension) runAdd(c *cobra.Command, args []string) error {
	priceFlag, _ := c.Flags().GetString(extension.FlagPrice)
	desc, _ := c.Flags().GetString(extension.FlagDescription)
	stock, _ := c.Flags().GetInt(extension.FlagStock)

	price, err := parsePrice(priceFlag)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	np := store.NewProduct{
		Name:        args[0],
		Description: desc,
		Price:       *price,
		Stock:       stock,
	}

	l := log.Event("product:add", "create").Author(cmd.Author()).Detail("name", np.Name)
	p, err := e.svc.Create(c.Context(), np, cmd.Author())
	if err == nil {
		l.Result(p.ID)
	}
	l.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("add: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(p.ToJSON())
	}
	fmt.Fprintf(cmd.Out(), "Created product %d\n", p.ID)
	return format.Product(cmd.Out(), p)
}
