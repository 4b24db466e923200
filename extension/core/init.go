// init.go implements the "catalogd init" command for catalog initialisation.
//
// Separated from extension.go to isolate init-specific logic. Init is special
// because it runs before a catalog exists and creates the initial database.
//
// Design: Init does NOT create config - that's managed separately via
// "catalogd config". This follows git's model where init creates repository
// structure and config is separate. The --local flag controls whether the
// database is committed to git or gitignored.

package core

import (
	"fmt"

	"github.com/jpl-au/catalogd/cmd"
	"github.com/jpl-au/catalogd/extension"
	"github.com/jpl-au/catalogd/internal/catalog"
	"github.com/jpl-au/catalogd/internal/log"
	"github.com/jpl-au/catalogd/internal/repo"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Initialise a new product catalog",
		Long: `Creates a .catalogd/catalog.db database in the current directory.

Use --db to create additional databases:
  catalogd init --db staging    # creates .catalogd/catalog-staging.db

Use --dir to create in a different directory:
  catalogd init --dir /path/to/project

Use --local to exclude from git:
  catalogd init --db scratch --local

Note: init does not create config. Use "catalogd config" to set up configuration.`,
		RunE: runInit,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark database as local (gitignored)")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	db, dir := cmd.DB(), cmd.Dir()

	// --local edits the current project's .gitignore, which makes no sense
	// for a database created somewhere else.
	if local && dir != "" {
		return cmd.PrintJSONError(fmt.Errorf("cannot use --local with --dir: --local modifies the current project's .gitignore, but --dir creates the database elsewhere"))
	}

	dbPath, err := catalog.Init(cmd.Force(), db, local, dir)

	log.Event("core:init", "init").
		Author(cmd.Author()).
		Detail("db", db).
		Detail("dir", dir).
		Detail("local", local).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"path": dbPath})
	}
	loc := repo.Dir + "/" + repo.DBFileName(db)
	if dir != "" {
		loc = dir + "/" + loc
	}
	fmt.Fprintf(cmd.Out(), "Initialised catalog in %s\n", loc)
	return nil
}
