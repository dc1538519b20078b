package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mode-allocation-simulator/internal/adapters/costs"
	"mode-allocation-simulator/internal/api"
	"mode-allocation-simulator/internal/config"
	"mode-allocation-simulator/internal/platform/obs"
	"mode-allocation-simulator/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires the configured cost source behind its port and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		// The logger is not configured yet.
		zap.NewExample().Fatal("load config", zap.Error(err))
	}

	logger, err := obs.InitLogger(cfg.LogLevel)
	if err != nil {
		zap.NewExample().Fatal("init logger", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing reference cost file is fatal at startup.
	repo, closeCosts, err := costs.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("open cost source", zap.String("source", cfg.CostSource), zap.Error(err))
	}
	defer func() { _ = closeCosts() }()

	policy := services.DuplicateKeepFirst
	if cfg.StrictLanes {
		policy = services.DuplicateReject
	}

	router := api.NewRouter(repo, api.RouterOptions{
		DuplicatePolicy: policy,
		MaxUploadBytes:  cfg.MaxUploadMB << 20,
	})

	logger.Info("server listening",
		zap.String("addr", ":"+cfg.Port),
		zap.String("cost_source", cfg.CostSource),
		zap.Bool("strict_lanes", cfg.StrictLanes),
	)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
