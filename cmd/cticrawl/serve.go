package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cticrawl/internal/api"
	"cticrawl/internal/config"
	"cticrawl/internal/crawler"
)

func newServeCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:          "serve",
		Short:        "Start the control API server for on-demand crawls",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := buildEngine(cfg, cfg.OutputDir, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			runner := crawler.NewRunner(ctx, engine, logger)
			server := api.NewServer(cfg, runner, logger)

			go func() {
				if err := server.Start(); err != nil && err != http.ErrServerClosed {
					logger.Fatal("could not start server", zap.Error(err))
				}
			}()
			logger.Info("server started", zap.String("port", cfg.ServerPort))

			<-ctx.Done()
			logger.Info("shutting down server...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error("server forced to shutdown", zap.Error(err))
				return err
			}

			logger.Info("server exiting")
			return nil
		},
	}
}
