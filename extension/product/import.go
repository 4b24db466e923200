// import.go implements the "catalogd import" command for bulk loading
// products from YAML or JSON files.
//
// Import is storeless: --dry-run validates files without a catalog, and a
// real import opens its own service.

package product

import (
	"fmt"
	"io"

	"github.com/jpl-au/catalogd/cmd"
	"github.com/jpl-au/catalogd/extension"
	"github.com/jpl-au/catalogd/internal/importer"
	"github.com/jpl-au/catalogd/internal/log"
	"github.com/jpl-au/catalogd/internal/service"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "import <path>",
		Short: "Bulk import products from YAML or JSON",
		Long: `Import products from a .yaml, .yml or .json file, or from every such file
under a directory.

A file holds a list of products, or a mapping with a "products" list:

  - name: Travel Mug
    description: Double-walled steel
    price: "12.50"
    stock: 40

Every product is validated before anything is written; one invalid product
fails the whole import.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Validate without importing")
	c.Flags().BoolP(extension.FlagIncludeHidden, "H", false, "Include hidden files/dirs")
	return c
}

func runImport(c *cobra.Command, args []string) error {
	src := args[0]
	opts := importer.Options{Author: cmd.Author()}
	opts.DryRun, _ = c.Flags().GetBool(extension.FlagDryRun)
	opts.Hidden, _ = c.Flags().GetBool(extension.FlagIncludeHidden)

	var svc service.Service
	if !opts.DryRun {
		s, err := cmd.OpenService()
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("open catalog: %w", err))
		}
		defer s.Close()
		svc = s
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}
	result, err := importer.Run(c.Context(), w, svc, src, opts)

	log.Event("product:import", "import").
		Author(cmd.Author()).
		Detail("source", src).
		Detail("dry_run", opts.DryRun).
		Detail("count", result.Imported).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("import %q: %w", src, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{
			"files":    result.Files,
			"products": result.Products,
			"imported": result.Imported,
			"dry_run":  opts.DryRun,
		})
	}
	if len(result.Files) == 0 {
		fmt.Fprintf(cmd.Out(), "No product files found in %q (expected .yaml, .yml or .json)\n", src)
	}
	return nil
}
