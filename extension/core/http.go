// http.go implements the "catalogd http" command, serving the catalog as a
// JSON API until interrupted.
//
// Like serve, http owns its service: the database stays open for the life
// of the server and is checkpointed on shutdown.

package core

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jpl-au/catalogd/cmd"
	"github.com/jpl-au/catalogd/extension"
	"github.com/jpl-au/catalogd/internal/api"
	"github.com/jpl-au/catalogd/internal/config"
	"github.com/jpl-au/catalogd/internal/log"
	"github.com/spf13/cobra"
)

func newHTTPCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "http",
		Short: "Serve the catalog over HTTP",
		Long: `Serve the catalog as a JSON API.

  catalogd http                      # listen on http.addr (default 127.0.0.1:8080)
  catalogd http --addr :9000

Routes: GET /products, GET /products/search, GET /products/low_stock,
GET|PATCH|PUT|DELETE /products/:id, POST /products, GET /health.

See 'catalogd guide http' for parameters and responses.`,
		Args: cobra.NoArgs,
		RunE: runHTTP,
	}
	c.Flags().String(extension.FlagAddr, "", "Listen address (overrides http.addr)")
	return c
}

func runHTTP(c *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	addr, _ := c.Flags().GetString(extension.FlagAddr)
	if addr == "" {
		addr = cfg.HTTPAddr()
	}

	// The server reports its own progress; make sure it is visible.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	svc, err := cmd.OpenService()
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("open catalog: %w", err))
	}
	defer svc.Close()
	svc.SetExtensionContext(extension.NewContext(svc, svc.DB(), cfg, logger))

	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = api.New(svc, addr, logger).Run(ctx)

	log.Event("core:http", "serve").Author(cmd.Author()).Detail("addr", addr).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("http: %w", err))
	}
	return nil
}
