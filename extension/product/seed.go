// seed.go implements the "catalogd seed" command, which fills the catalog
// with generated sample products for demos and load testing.

package product

import (
	"fmt"
	"io"

	"github.com/jpl-au/catalogd/cmd"
	"github.com/jpl-au/catalogd/extension"
	"github.com/jpl-au/catalogd/internal/log"
	"github.com/jpl-au/catalogd/internal/seed"
	"github.com/spf13/cobra"
)

func (e *Extension) newSeedCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "seed",
		Short: "Generate sample products",
		Long: fmt.Sprintf(`Generate sample products from built-in category templates.

  catalogd seed                 # 1000 products
  catalogd seed -n 50000        # a larger catalog
  catalogd seed --seed 42       # reproducible output

Stock is spread roughly 5%% out of stock, 10%% low (1-5), 20%% medium (6-20)
and 65%% high (21-100). At most %d products per run.`, seed.MaxCount),
		Args: cobra.NoArgs,
		RunE: e.runSeed,
	}
	c.Flags().IntP(extension.FlagCount, "n", 1000, "Number of products to generate")
	c.Flags().Uint64(extension.FlagSeed, 0, "Random seed (0 for random)")
	return c
}

func (e *Extension) runSeed(c *cobra.Command, _ []string) error {
	opts := seed.Options{Author: cmd.Author()}
	opts.Count, _ = c.Flags().GetInt(extension.FlagCount)
	opts.Seed, _ = c.Flags().GetUint64(extension.FlagSeed)

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	n, err := seed.Run(c.Context(), w, e.svc, opts)

	log.Event("product:seed", "seed").
		Author(cmd.Author()).
		Detail("count", n).
		Detail("seed", opts.Seed).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("seed: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]int{"created": n})
	}
	return nil
}
