package main

import (
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/botsync/internal/infrastructure/server"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the admin HTTP API",
		Long: `Serve GET /health, GET /metrics, GET /jobs and POST /jobs/{name} on
HOST:PORT. Only one job runs at a time; a concurrent request gets 409.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, opts.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			srv := server.NewServer(a.cfg.Server, a.runner, a.logger, a.metrics, a.tracer, a.cfg.Logging.Development)
			return srv.Run(ctx)
		},
	}
}
