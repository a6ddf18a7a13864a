package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/server"

	"go.uber.org/zap"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Config
	if err := config.LoadDotEnv(); err != nil {
		panic(err)
	}
	cfg, err := config.FromEnv()
	if err != nil {
		panic(err)
	}

	// Logger
	if err := observability.InitLogger(cfg.LogLevel); err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	// Tracing, metrics, log export
	telemetryShutdown, err := initTelemetry(ctx, cfg)
	if err != nil {
		observability.Logger.Fatal("telemetry init failed", zap.Error(err))
	}
	defer telemetryShutdown(context.Background())

	// Sessions
	store := calculator.NewStore(cfg.SessionMax)
	if err := observability.RegisterCollector(calculator.NewCollector(store)); err != nil {
		observability.Logger.Fatal("registering session collector", zap.Error(err))
	}
	go store.Janitor(ctx, cfg.SessionSweepInterval, cfg.SessionTTL, func(n int) {
		calculator.RecordEvicted(ctx, n)
		observability.Logger.Info("expired calculator sessions evicted", zap.Int("count", n))
	})

	// Router
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.NewRouter(store),
	}

	go func() {
		observability.Logger.Info("server started",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("service", cfg.ServiceName),
			zap.Bool("otlp_export", cfg.ExportEnabled),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.Logger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	waitForShutdown(srv, cfg)
}

func waitForShutdown(srv *http.Server, cfg config.Config) {

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		observability.Logger.Error("graceful shutdown failed", zap.Error(err))
		return
	}

	observability.Logger.Info("server stopped")
}
