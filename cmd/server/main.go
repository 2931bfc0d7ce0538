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

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/yotayard/yotayard/config"
	"github.com/yotayard/yotayard/internal/email"
	"github.com/yotayard/yotayard/internal/health"
	"github.com/yotayard/yotayard/internal/infrastructure/postgres"
	ctxlog "github.com/yotayard/yotayard/internal/log"
	"github.com/yotayard/yotayard/internal/metrics"
	"github.com/yotayard/yotayard/internal/payments"
	httptransport "github.com/yotayard/yotayard/internal/transport/http"
	"github.com/yotayard/yotayard/internal/transport/http/handler"
	"github.com/yotayard/yotayard/internal/usecase"
	"github.com/yotayard/yotayard/internal/vin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	emailSender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	// Sellers
	sellerRepo := postgres.NewSellerRepository(pool)
	authUsecase := usecase.NewAuthUsecase(sellerRepo, emailSender, []byte(cfg.JWTSecret), cfg.PublicBaseURL)
	authHandler := handler.NewAuthHandler(authUsecase, logger)

	// VIN decoding
	vinClient := vin.NewNHTSAClient(cfg.VINLookupBaseURL, time.Duration(cfg.VINLookupTimeoutSec)*time.Second)
	vinHandler := handler.NewVINHandler(vin.NewDecoder(vinClient), logger)

	// Listings and verification
	listingRepo := postgres.NewListingRepository(pool)
	verificationRepo := postgres.NewVerificationRepository(pool)
	verificationUsecase := usecase.NewVerificationUsecase(verificationRepo, emailSender, logger, cfg.PublicBaseURL)
	verifyHandler := handler.NewVerifyHandler(verificationUsecase, logger)

	paymentRepo := postgres.NewPaymentRepository(pool)
	listingUsecase := usecase.NewListingUsecase(listingRepo, paymentRepo, verificationUsecase)
	listingHandler := handler.NewListingHandler(listingUsecase, logger)

	// Payments
	paymentUsecase := usecase.NewPaymentUsecase(
		paymentRepo,
		listingRepo,
		payments.NewStripeClient(cfg.StripeSecretKey),
		logger,
		cfg.SellerFeeCents,
		cfg.BuyerFeeCents,
		cfg.PublicBaseURL,
	)
	paymentHandler := handler.NewPaymentHandler(paymentUsecase, cfg.StripeWebhookSecret, logger)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr: ":" + cfg.Port,
		Handler: httptransport.NewRouter(
			logger,
			authHandler,
			vinHandler,
			listingHandler,
			verifyHandler,
			paymentHandler,
			[]byte(cfg.JWTSecret),
		),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
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
