package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/escalate/internal/metrics"
	"github.com/example/escalate/internal/wire"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Connect to Discord and handle commands",
		Long: `Connect to the Discord gateway and handle chat commands until
interrupted. Metrics are served at /metrics when metrics_addr is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadedConfig
			if err := cfg.RequireToken(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if cfg.MetricsAddr != "" {
				srv := startMetricsServer(cfg.MetricsAddr)
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
			}

			bot, err := wire.Bot(cfg, NewChatRootCmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			logger.Infow("starting bot", "prefix", cfg.Prefix)
			return bot.Run(ctx)
		},
	}
}

func startMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.MetricsHandler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Infow("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorw("metrics server failed", "error", err)
		}
	}()
	return srv
}
