package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/app"
	"github.com/nekogravitycat/salon-booking-backend/internal/config"
	"github.com/nekogravitycat/salon-booking-backend/internal/db"
	"github.com/nekogravitycat/salon-booking-backend/internal/notifier"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/httpx"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/storage"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/telemetry"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "salon-api"

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	logger := telemetry.NewLogger(serviceName, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", "err", err)
		os.Exit(1)
	}
	logger.Info("server exited gracefully")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	shutdownTracing, err := telemetry.SetupTracing(ctx, telemetry.OTelConfig{
		Enabled:      cfg.OTelEnabled,
		ServiceName:  serviceName,
		OTLPEndpoint: cfg.OTelEndpoint,
		SampleRatio:  cfg.OTelSampleRatio,
	})
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("tracer shutdown failed", "err", err)
		}
	}()

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return err
	}

	checks := []httpx.ReadyCheck{{Name: "db", Check: db.ReadyCheck(pool)}}

	appCfg := app.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.Origins(),
		Logger:             logger,
		DBPool:             pool,
		Storage:            store,
		JWTSecret:          cfg.JWTSecret,
		JWTTTL:             cfg.JWTAccessTokenTTL,
		BcryptCost:         cfg.BcryptCost,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		StaffCacheSize:     cfg.StaffCacheSize,
		EventsBufferSize:   cfg.EventsBufferSize,
	}

	// Redis is optional; without it requests are not rate limited.
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		appCfg.Redis = rdb
		checks = append(checks, httpx.ReadyCheck{Name: "redis", Check: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	} else {
		logger.Info("REDIS_ADDR not set, rate limiting disabled")
	}

	// Kafka is optional; without it events stay in process.
	if cfg.KafkaBrokers != "" {
		writer := notifier.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Warn("kafka writer close failed", "err", err)
			}
		}()
		appCfg.KafkaWriter = writer
		checks = append(checks, httpx.ReadyCheck{Name: "kafka", Check: notifier.ReadyCheck(cfg.KafkaBrokers)})
	}
	appCfg.ReadyChecks = checks

	container, err := app.NewContainer(appCfg)
	if err != nil {
		return err
	}
	defer container.Close()

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           otelhttp.NewHandler(container.Router, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}
	server.RegisterOnShutdown(container.Events.Close)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server running", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server forced to shutdown", "err", err)
		_ = server.Close()
	}
	return nil
}
