package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/handydesk/handydesk/internal/attention"
	jobmetrics "github.com/handydesk/handydesk/internal/jobs"
)

// DashboardSource computes the attention dashboard.
type DashboardSource interface {
	Dashboard(ctx context.Context) (attention.Dashboard, error)
}

// AttentionScanJob logs and counts what the attention engine flags.
type AttentionScanJob struct {
	Attention DashboardSource
	Refresh   func(ctx context.Context) error
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
}

// NewAttentionScanJob wires dependencies for the attention scan handler.
func NewAttentionScanJob(source DashboardSource, refresh func(context.Context) error, logger *slog.Logger, metrics *jobmetrics.Metrics) *AttentionScanJob {
	return &AttentionScanJob{Attention: source, Refresh: refresh, Logger: logger, Metrics: metrics}
}

// Handle processes TaskAttentionScan tasks.
func (j *AttentionScanJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Attention == nil {
		return errors.New("attention scan: handler not configured")
	}
	var payload AttentionScanPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("attention scan: decode payload: %v: %w", err, asynq.SkipRetry)
		}
	}
	if payload.Reason == "" {
		payload.Reason = "cron"
	}

	tracker := j.Metrics.Track(TaskAttentionScan)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := loggerOrDefault(j.Logger).With(slog.String("reason", payload.Reason))
	if j.Refresh != nil {
		if err := j.Refresh(ctx); err != nil {
			logger.Error("refresh snapshots", slog.Any("error", err))
			return err
		}
	}
	dash, err := j.Attention.Dashboard(ctx)
	if err != nil {
		logger.Error("attention scan failed", slog.Any("error", err))
		return err
	}
	j.Metrics.SetFlagged("jobs", len(dash.Jobs))
	j.Metrics.SetFlagged("leads", len(dash.Leads))
	j.Metrics.SetFlagged("contact_needed", len(dash.ContactNeeded))
	j.Metrics.SetFlagged("drafts", len(dash.Drafts))
	logger.Info("attention scan complete",
		slog.Int("flagged", dash.FlaggedCount()),
		slog.Int("jobs", len(dash.Jobs)),
		slog.Int("leads", len(dash.Leads)),
		slog.Int("contact_needed", len(dash.ContactNeeded)),
		slog.Int("drafts", len(dash.Drafts)),
	)
	return nil
}
