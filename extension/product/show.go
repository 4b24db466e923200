// show.go implements the "catalogd show" command.

package product

import (
	"fmt"

	"github.com/jpl-au/catalogd/cmd"
	"github.com/jpl-au/catalogd/internal/format"
	"github.com/jpl-au/catalogd/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a product",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runShow,
	}
}

func (e *Extension) runShow(c *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	p, err := e.svc.Get(c.Context(), id)

	log.Event("product:show", "read").Author(cmd.Author()).Product(id).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("show %d: %w", id, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(p.ToJSON())
	}
	return format.Product(cmd.Out(), p)
}
