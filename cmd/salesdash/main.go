package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salesdash/internal/config"
	apphttp "salesdash/internal/http"
	"salesdash/internal/services"
	"salesdash/internal/storage"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// A store failure is visible but not fatal: the dashboard keeps
	// serving its static shell with every metric degraded to empty.
	var reader services.SalesReader
	var ping func(context.Context) error
	repo, err := storage.NewRepository(cfg)
	if err != nil {
		logger.Error("Failed to open sales store, continuing degraded", "error", err, "database", cfg.DatabaseURL)
	} else {
		defer repo.Close()
		reader = repo
		ping = repo.Ping
	}

	dashboard := services.NewDashboardService(reader, cfg.QueryTimeout)
	srv := apphttp.NewServer(":"+cfg.Port, dashboard, ping)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting salesdash server", "port", cfg.Port, "degraded", reader == nil)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
