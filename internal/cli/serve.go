package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmichalek/netlayout/internal/api"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout API",
		Long: `Run the HTTP layout API.

The server exposes the layout pipeline over JSON: POST /v1/layout computes
positions for a posted topology, POST /v1/crossings counts link crossings,
and /v1/topologies provides CRUD for the configured topology store.

The server runs until interrupted and drains in-flight requests on shutdown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	s, err := c.newStore(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close(context.WithoutCancel(ctx))

	c.Logger.Info("starting API server",
		"addr", addr,
		"cache", c.Config.Cache.Backend,
		"store", c.Config.Store.Backend,
	)

	server := api.New(runner, s, c.Logger)
	return server.ListenAndServe(ctx, addr)
}
