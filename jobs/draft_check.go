package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/handydesk/handydesk/internal/jobs"
)

// DraftChecker reconciles draft notifications and reports the stale count.
type DraftChecker interface {
	Check(ctx context.Context) (int, error)
}

// DraftCheckJob runs the draft monitor from the worker.
type DraftCheckJob struct {
	Monitor DraftChecker
	// Refresh reloads the snapshots the monitor reads, since the server process
	// may have written them since the last run.
	Refresh func(ctx context.Context) error
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewDraftCheckJob wires dependencies for the draft check handler.
func NewDraftCheckJob(monitor DraftChecker, refresh func(context.Context) error, logger *slog.Logger, metrics *jobmetrics.Metrics) *DraftCheckJob {
	return &DraftCheckJob{Monitor: monitor, Refresh: refresh, Logger: logger, Metrics: metrics}
}

// Handle processes TaskDraftCheck tasks.
func (j *DraftCheckJob) Handle(ctx context.Context, _ *asynq.Task) (resultErr error) {
	if j == nil || j.Monitor == nil {
		return errors.New("draft check: handler not configured")
	}
	tracker := j.Metrics.Track(TaskDraftCheck)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := loggerOrDefault(j.Logger)
	if j.Refresh != nil {
		if err := j.Refresh(ctx); err != nil {
			logger.Error("refresh snapshots", slog.Any("error", err))
			return err
		}
	}
	stale, err := j.Monitor.Check(ctx)
	if err != nil {
		logger.Error("draft check failed", slog.Any("error", err))
		return err
	}
	j.Metrics.SetStaleDrafts(stale)
	if stale > 0 {
		logger.Info("stale draft quotes", slog.Int("count", stale))
	}
	return nil
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.Default()
}
