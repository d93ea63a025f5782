package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDraftCheck reconciles stale-draft notifications with the current quotes.
	TaskDraftCheck = "drafts:check"
	// TaskAttentionScan computes the attention dashboard and records what it flagged.
	TaskAttentionScan = "attention:scan"
)

// Cron specs used by the worker binary.
const (
	DraftCheckSpec    = "@every 1m"
	AttentionScanSpec = "0 7 * * *"
)

// AttentionScanPayload tunes one attention scan run.
type AttentionScanPayload struct {
	// Reason is logged with the run, e.g. "cron" or "manual".
	Reason string `json:"reason,omitempty"`
}

// NewDraftCheckTask constructs a draft check task. It carries no payload.
func NewDraftCheckTask() *asynq.Task {
	return asynq.NewTask(TaskDraftCheck, nil)
}

// NewAttentionScanTask constructs an attention scan task.
func NewAttentionScanTask(payload AttentionScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAttentionScan, data), nil
}
