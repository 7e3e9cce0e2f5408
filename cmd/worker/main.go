// The worker reclaims orphaned uploads: temp images that were stored but
// never attached to an article or comment. It runs the cleanup on a cron
// schedule and exposes its own metrics endpoint.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"devflow/internal/config"
	pgRepo "devflow/internal/infra/adapter/persistence/postgres"
	"devflow/internal/infra/db"
	"devflow/internal/infra/storage"
	"devflow/internal/observability/logging"
	"devflow/internal/observability/metrics"
	"devflow/internal/resilience/circuitbreaker"
	"devflow/internal/resilience/retry"
	uploadUC "devflow/internal/usecase/upload"
	pkgconfig "devflow/pkg/config"
)

func main() {
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load("")
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	database, err := db.Open()
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	var store storage.ImageStore
	switch cfg.Storage.Backend {
	case "minio":
		store, err = storage.NewMinioStoreFromEnv(context.Background())
	default:
		store, err = storage.NewFilesystemStore(cfg.Storage.Root)
	}
	if err != nil {
		logger.Error("failed to initialize image storage", slog.Any("error", err))
		os.Exit(1)
	}

	svc := &uploadUC.Service{
		Temp:   pgRepo.NewTempImageRepo(circuitbreaker.NewDB(database)),
		Images: store,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metricsAddr := fmt.Sprintf(":%d", pkgconfig.GetEnvInt("WORKER_METRICS_PORT", 9091))
	metricsSrv := startMetricsServer(metricsAddr, logger)

	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.Cleanup.Schedule, func() {
		runCleanup(ctx, svc, cfg.Cleanup, logger)
	})
	if err != nil {
		logger.Error("failed to schedule cleanup", slog.Any("error", err))
		os.Exit(1)
	}

	scheduler.Start()
	logger.Info("worker started",
		slog.String("schedule", cfg.Cleanup.Schedule),
		slog.Duration("max_age", cfg.Cleanup.MaxAge.Std()),
		slog.Int("batch", cfg.Cleanup.Batch),
		slog.String("metrics_addr", metricsAddr))

	// One run at startup so a restart never postpones overdue cleanup to the
	// next scheduled slot.
	runCleanup(ctx, svc, cfg.Cleanup, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down worker...")
	cancel()

	stopCtx := scheduler.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(30 * time.Second):
		logger.Warn("cleanup job did not finish before shutdown timeout")
	}
	stopMetricsServer(metricsSrv, logger)
	logger.Info("worker stopped")
}

// runCleanup reclaims one batch of orphaned uploads, retrying transient
// storage and database failures.
func runCleanup(ctx context.Context, svc *uploadUC.Service, cfg config.CleanupConfig, logger *slog.Logger) {
	start := time.Now()
	var reclaimed int

	err := retry.WithBackoff(ctx, retry.StorageConfig(), func() error {
		n, err := svc.CleanupOrphans(ctx, cfg.MaxAge.Std(), cfg.Batch)
		reclaimed += n
		return err
	})
	if err != nil {
		logger.Error("cleanup run failed",
			slog.Int("reclaimed", reclaimed),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err))
		return
	}

	metrics.RecordTempImagesReclaimed(reclaimed)
	logger.Info("cleanup run finished",
		slog.Int("reclaimed", reclaimed),
		slog.Duration("duration", time.Since(start)))
}
