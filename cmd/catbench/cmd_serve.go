package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/catbench/leaderboard/internal/projectconfig"
	"github.com/catbench/leaderboard/internal/webserver"
)

func newServeCommand() *cobra.Command {
	var port int
	var dataDir string
	var noBrowser bool
	var corsOrigins []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the leaderboard dashboard",
		Long: `Serve the leaderboard dashboard and REST API over HTTP.

The server binds to loopback only and serves the generated output directory:
the JSON document, the summary report, and any deployed frontend assets.
The API exposes records, rankings, Pareto frontiers, and breakdown tables;
POST /api/reload picks up a regenerated document without a restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting working directory: %w", err)
			}
			cfg, err := projectconfig.Load(wd)
			if err != nil {
				return err
			}

			serverCfg := webserver.Config{
				Port:           cfg.Server.Port,
				DataDir:        firstNonEmpty(cfg.Server.DataDir, cfg.Paths.Output),
				NoBrowser:      noBrowser,
				AllowedOrigins: corsOrigins,
				Frontiers:      cfg.Frontiers,
				Logger:         slog.Default(),
			}
			if port > 0 {
				serverCfg.Port = port
			}
			if dataDir != "" {
				serverCfg.DataDir = dataDir
			}

			srv, err := webserver.New(serverCfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default: from .catbench.yaml)")
	cmd.Flags().StringVarP(&dataDir, "data-dir", "d", "", "Directory with generated artifacts (default: from .catbench.yaml)")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Do not open a browser")
	cmd.Flags().StringSliceVar(&corsOrigins, "cors-origin", nil, "Allowed CORS origin (repeatable, for frontend dev servers)")

	return cmd
}
