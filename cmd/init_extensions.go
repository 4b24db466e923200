/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Separated from root.go to isolate the initialisation logic that locates
// the catalog, loads config, and wires up extensions.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. This two-phase pattern allows extensions to
// declare commands before the catalog exists. The service is created once
// and shared across all extensions via the Context.

package cmd

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/jpl-au/catalogd/extension"
	"github.com/jpl-au/catalogd/internal/catalog"
	"github.com/jpl-au/catalogd/internal/config"
	"github.com/jpl-au/catalogd/internal/log"
)

// noStoreCommands lists commands that bypass automatic store initialisation.
// Built dynamically from bootstrap commands plus extension-declared storeless commands.
var noStoreCommands map[string]bool

// authorRequiredCommands lists commands that change catalog data.
var authorRequiredCommands = map[string]bool{
	"add":    true,
	"update": true,
	"rm":     true,
	"import": true,
	"seed":   true,
}

// buildNoStoreCommands creates the set of commands that skip store initialisation.
//
// Bootstrap commands (init, guide, config, llm) must work before a catalog
// exists. Extensions add their own through the Storeless interface, for
// commands that manage their own service lifecycle such as serve.
func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		"init":   true,
		"guide":  true,
		"config": true,
		"llm":    true,
	}

	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				cmds[name] = true
			}
		}
	}

	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	extService *catalog.Service
	initOnce   sync.Once
	initErr    error
)

// OpenService opens the catalog selected by --db and --dir. Commands that
// manage their own service lifecycle use it; the caller closes the service.
func OpenService() (*catalog.Service, error) {
	svc, err := catalog.New(DB(), Dir())
	if err != nil {
		return nil, err
	}
	log.SetProject(svc.Dir())
	return svc, nil
}

// initExtensions creates the catalog service and injects it into extensions.
//
// sync.Once guarantees a single service per process: opening applies
// schema and sets up WAL mode, and every extension must share the result.
func initExtensions() error {
	initOnce.Do(func() {
		svc, err := OpenService()
		if err != nil {
			initErr = fmt.Errorf("opening database: %w", err)
			return
		}
		extService = svc

		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		extContext = extension.NewContext(svc, svc.DB(), cfg, slog.Default())
		svc.SetExtensionContext(extContext)

		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}

		noStoreCommands = buildNoStoreCommands()
	})
}
