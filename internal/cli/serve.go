package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/HartBrook/lyra/internal/logging"
	"github.com/HartBrook/lyra/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewServeCmd creates the serve command.
func NewServeCmd(a *app) *cobra.Command {
	var addr string
	var logFormat string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the lyra HTTP API",
		Long: `Serves analyze, candidates, evaluate, compare, and sessions as a JSON API
under /api/v1, with /health and Prometheus metrics on /metrics.
The server shuts down gracefully on SIGINT or SIGTERM.`,
		Example: `  lyra serve
  lyra serve --addr 127.0.0.1:9000 --log-format console`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			logger, err := a.log(logFormat)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if !logger.Core().Enabled(zap.DebugLevel) {
				gin.SetMode(gin.ReleaseMode)
			}

			gen, err := a.generator()
			if err != nil {
				return err
			}
			judge, err := a.judge()
			if err != nil {
				return err
			}
			store, err := a.history()
			if err != nil {
				return err
			}

			server.Version = Version
			srv := server.New(server.Options{
				Generator:  gen,
				Judge:      judge,
				History:    store,
				ExportsDir: cfg.Exports.Dir,
				Model:      cfg.Generation.Model,
				Logger:     logger,
			})

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	cmd.Flags().StringVar(&logFormat, "log-format", logging.FormatJSON, "Log format: json or console")

	return cmd
}
