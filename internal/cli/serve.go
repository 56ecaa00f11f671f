package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/knomap/knomap/internal/server"
	"github.com/knomap/knomap/pkg/pipeline"
	"github.com/knomap/knomap/pkg/store"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server.

The server exposes layout and analysis endpoints under /v1, plus stored
graph management under /v1/graphs when a mongo_uri is configured. Without
one, stored graphs live in process memory and vanish on restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, or :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, addr string, noCache bool) error {
	if addr == "" {
		addr = c.Config.Server.Addr
	}

	backend, err := c.newCache(cmd, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	runner := pipeline.NewRunner(backend, nil, c.Logger)
	defer runner.Close()

	var st store.Store
	if c.Config.Store.MongoURI != "" {
		st, err = store.NewMongoStore(cmd.Context(), c.Config.Store.MongoURI, c.Config.Store.Database)
		if err != nil {
			return fmt.Errorf("connect store: %w", err)
		}
	} else {
		c.Logger.Warn("no mongo_uri configured, using in-memory graph store")
		st = store.NewMemoryStore()
	}
	defer st.Close(cmd.Context())

	srv := server.New(runner, st, c.Logger)
	return srv.ListenAndServe(addr)
}
