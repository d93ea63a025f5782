package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	_ "github.com/joho/godotenv/autoload"

	"github.com/handydesk/handydesk/internal/app"
	"github.com/handydesk/handydesk/internal/observability"
	"github.com/handydesk/handydesk/internal/platform/cache"
	"github.com/handydesk/handydesk/internal/platform/kv"
	"github.com/handydesk/handydesk/jobs"
)

var openStore = kv.Open

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("handydesk exited", slog.Any("error", err))
		stop()
		os.Exit(1)
	}
}

// run serves the API until ctx is done. Every resource opened here is closed before it
// returns.
func run(ctx context.Context, cfg *app.Config, logger *slog.Logger) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	store, err := openStore(ctx, cfg.StorageOptions())
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.StorageDriver, err)
	}
	defer closeQuietly(logger, "storage", store)

	metrics := observability.NewMetrics()
	container, err := app.NewContainer(ctx, cfg, logger, store, metrics)
	if err != nil {
		return fmt.Errorf("init services: %w", err)
	}

	var (
		queueClient *jobs.Client
		inspector   *asynq.Inspector
	)
	if cfg.DraftMonitor == app.DraftMonitorWorker {
		redisOpts := cache.QueueOpts(cfg.RedisAddr)
		queueClient, err = jobs.NewClient(redisOpts)
		if err != nil {
			return fmt.Errorf("init queue client: %w", err)
		}
		defer closeQuietly(logger, "queue client", queueClient)
		inspector = asynq.NewInspector(redisOpts)
		defer closeQuietly(logger, "inspector", inspector)
	}

	if app.RunDraftMonitorInProcess(cfg) {
		go container.DraftMonitor.Run(ctx, cfg.DraftCheckInterval)
		logger.Info("draft monitor started", slog.Duration("interval", cfg.DraftCheckInterval))
	}

	if !app.InTestMode() {
		if err := container.PDF.Ping(ctx); err != nil {
			logger.Warn("gotenberg unreachable, quote PDFs will fail", slog.Any("error", err))
		}
	}

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      app.NewRouter(container.RouterParams(queueClient, inspector)),
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr), slog.String("storage", cfg.StorageDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	default:
		return nil
	}
}

func closeQuietly(logger *slog.Logger, name string, c io.Closer) {
	if err := c.Close(); err != nil {
		logger.Warn(name+" close", slog.Any("error", err))
	}
}
