package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rainadr/kasirkopi-backend/internal/cron"
	"github.com/rainadr/kasirkopi-backend/internal/inventory"
	"github.com/rainadr/kasirkopi-backend/internal/shifts"
	"github.com/rainadr/kasirkopi-backend/pkg/config"
	"github.com/rainadr/kasirkopi-backend/pkg/db"
	"github.com/rainadr/kasirkopi-backend/pkg/logger"
	"github.com/rainadr/kasirkopi-backend/pkg/metrics"
	"github.com/rainadr/kasirkopi-backend/pkg/migrate"
	"github.com/rainadr/kasirkopi-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	metricsCollector := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer)
	lock, err := cron.NewRedisLock(redisClient, redisClient.CronLockKey("cron-worker"), cfg.Cron.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	shiftsRepo := shifts.NewRepository(dbClient.DB())
	shiftsService, err := shifts.NewService(shiftsRepo, dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create shifts service", err)
		os.Exit(1)
	}

	inventoryRepo := inventory.NewRepository(dbClient.DB())

	shiftJob, err := cron.NewShiftAutoCloseJob(cron.ShiftAutoCloseJobParams{
		Logger: logg,
		Shifts: shiftsService,
		MaxAge: cfg.Shift.AutoCloseAfter,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create shift auto-close job", err)
		os.Exit(1)
	}

	stockJob, err := cron.NewLowStockJob(cron.LowStockJobParams{
		Logger:    logg,
		Inventory: inventoryRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create low stock job", err)
		os.Exit(1)
	}

	registry := cron.NewRegistry(shiftJob, stockJob)
	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  metricsCollector,
		Interval: cfg.Cron.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
	})
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}
