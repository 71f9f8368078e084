package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSessionsPrune removes expired rows from auth_sessions.
	TaskSessionsPrune = "auth:sessions:prune"
	// TaskAuditPrune removes audit entries past the retention window.
	TaskAuditPrune = "audit:prune"
)

// AuditPrunePayload overrides the configured retention when RetentionDays > 0.
type AuditPrunePayload struct {
	RetentionDays int `json:"retention_days,omitempty"`
}

// NewSessionsPruneTask builds the session cleanup task.
func NewSessionsPruneTask() *asynq.Task {
	return asynq.NewTask(TaskSessionsPrune, nil)
}

// NewAuditPruneTask builds the audit retention task.
func NewAuditPruneTask(payload AuditPrunePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAuditPrune, data), nil
}
