package serve

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"whisper-web/internal/app"
)

var (
	host            string
	port            int
	shutdownTimeout time.Duration
)

func init() {
	Cmd.Flags().StringVar(&host, "host", "", "listen host (overrides server.host)")
	Cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides server.port, default 8080)")
	Cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "grace period for in-flight requests on shutdown")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI",
	Long: `Start the web UI on a local port.

- GET / shows the upload and record page
- POST /api/v1/transcriptions is the JSON endpoint used by the recorder
- A missing API key is reported on the page, not at startup`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		verbose, _ := cmd.Flags().GetBool("verbose")

		cfg, logger, err := app.LoadRuntime(configFile, verbose)
		if err != nil {
			return err
		}
		defer logger.Sync()

		if host != "" {
			cfg.Server.Host = host
		}
		if port != 0 {
			cfg.Server.Port = port
		}

		srv, err := app.InitializeServer(cfg, logger)
		if err != nil {
			return err
		}
		if err := srv.Start(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()

		logger.Info("Shutdown signal received", zap.Duration("timeout", shutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
