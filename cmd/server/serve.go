package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"bloomviewer/internal/config"
	"bloomviewer/internal/database"
	"bloomviewer/internal/fixtures"
	"bloomviewer/internal/logger"
	"bloomviewer/internal/metrics"
	"bloomviewer/internal/routes"
	"bloomviewer/internal/store"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	logr := logger.New(cfg)
	defer logr.Sync()

	seed, err := fixtures.Load(cfg.SeedFile)
	if err != nil {
		return err
	}

	locs, db, err := openStore(ctx, cfg, seed)
	if err != nil {
		logr.Error("failed to open location store", zap.String("driver", cfg.StorageDriver), zap.Error(err))
		return err
	}
	if db != nil {
		defer db.Close()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)
	if n, err := locs.Count(ctx); err == nil {
		m.SetStored(n)
	}

	r := routes.NewRouter(cfg, logr, routes.Dependencies{
		Store:    locs,
		Seed:     seed,
		Metrics:  m,
		Gatherer: reg,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logr.Info("server started",
			zap.String("port", cfg.Port),
			zap.String("storage", cfg.StorageDriver),
			zap.Bool("auth", cfg.AuthEnabled))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logr.Info("server exited gracefully")
	return nil
}

// openStore picks the location store for cfg. The returned db is nil for the
// memory driver.
func openStore(ctx context.Context, cfg *config.Config, seed *fixtures.Seed) (store.LocationStore, *bun.DB, error) {
	if cfg.StorageDriver == config.StorageMemory {
		return store.NewMemoryStore(seed.Locations), nil, nil
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	s, err := store.NewBunStore(ctx, db, seed.Locations)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return s, db, nil
}
