// sweeper runs the scheduled database maintenance: purging stale
// verification tokens and archiving abandoned drafts. Schedule comes
// from SWEEP_SCHEDULE (cron syntax, default @hourly).
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/yotayard/yotayard/config"
	"github.com/yotayard/yotayard/internal/health"
	"github.com/yotayard/yotayard/internal/infrastructure/postgres"
	ctxlog "github.com/yotayard/yotayard/internal/log"
	"github.com/yotayard/yotayard/internal/metrics"
	"github.com/yotayard/yotayard/internal/sweeper"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	logger.Info("db connected")

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	sw := sweeper.New(
		postgres.NewVerificationRepository(pool),
		postgres.NewListingRepository(pool),
		logger,
	)

	c := cron.New()
	if _, err := c.AddFunc(cfg.SweepSchedule, func() { sw.Sweep(ctx) }); err != nil {
		stop()
		log.Fatalf("sweep schedule %q: %v", cfg.SweepSchedule, err)
	}
	c.Start()
	logger.Info("sweeper started", "schedule", cfg.SweepSchedule)

	// One immediate pass so a fresh deploy doesn't wait for the first tick.
	sw.Sweep(ctx)

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)
	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()

	<-c.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}

	logger.Info("sweeper shut down")
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
