package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/amakhet/soil-api/internal/api"
)

var (
	servePort      int
	serveSimulated bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the soil analysis HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initProvider(ctx, *cfg, serveSimulated)
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           newHandler(env),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				zap.L().Warn("server shutdown", zap.Error(err))
			}
		}()

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.String("provider", string(env.Provider.Variant())),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newHandler wires the HTTP handler from the loaded config.
func newHandler(env *providerEnv) http.Handler {
	return api.New(env.Provider,
		api.WithMetrics(env.Metrics, env.Registry),
		api.WithAllowedOrigins(cfg.Server.AllowedOrigins),
		api.WithDefaults(cfg.Analysis.DefaultBufferMeters, cfg.Analysis.DefaultWindowDays),
	)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().BoolVar(&serveSimulated, "simulated", false, "serve simulated soil data regardless of provider.mode")
	rootCmd.AddCommand(serveCmd)
}
