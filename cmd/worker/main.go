package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	_ "github.com/joho/godotenv/autoload"

	"github.com/handydesk/handydesk/internal/app"
	jobmetrics "github.com/handydesk/handydesk/internal/jobs"
	"github.com/handydesk/handydesk/internal/platform/cache"
	"github.com/handydesk/handydesk/internal/platform/kv"
	"github.com/handydesk/handydesk/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("worker exited", slog.Any("error", err))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *app.Config, logger *slog.Logger) error {
	if cfg.StorageDriver == kv.DriverMemory {
		return fmt.Errorf("worker needs a shared storage backend, got %q", cfg.StorageDriver)
	}
	store, err := kv.Open(ctx, cfg.StorageOptions())
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("storage close", slog.Any("error", err))
		}
	}()

	container, err := app.NewContainer(ctx, cfg, logger, store, nil)
	if err != nil {
		return fmt.Errorf("init services: %w", err)
	}
	metrics := jobmetrics.NewMetrics(nil)

	draftJob := jobs.NewDraftCheckJob(container.DraftMonitor, container.Reload, logger, metrics)
	scanJob := jobs.NewAttentionScanJob(container.Attention, container.Reload, logger, metrics)

	scanTask, err := jobs.NewAttentionScanTask(jobs.AttentionScanPayload{Reason: "cron"})
	if err != nil {
		return fmt.Errorf("build attention scan task: %w", err)
	}

	var cron []jobs.CronRegistration
	if cfg.DraftMonitor == app.DraftMonitorWorker {
		cron = append(cron, jobs.CronRegistration{Spec: jobs.DraftCheckSpec, Task: jobs.NewDraftCheckTask(), Options: []asynq.Option{asynq.MaxRetry(0)}})
	} else {
		logger.Info("draft check cron disabled", slog.String("draft_monitor", cfg.DraftMonitor))
	}
	cron = append(cron, jobs.CronRegistration{Spec: jobs.AttentionScanSpec, Task: scanTask, Options: []asynq.Option{asynq.MaxRetry(3)}})

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: cache.QueueOpts(cfg.RedisAddr),
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskDraftCheck, Handler: draftJob.Handle},
			{Type: jobs.TaskAttentionScan, Handler: scanJob.Handle},
		},
		Cron: cron,
	})
	if err != nil {
		return fmt.Errorf("init worker: %w", err)
	}

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("worker run: %w", err)
	}
	return nil
}
