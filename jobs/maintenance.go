package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/freightdesk/freightdesk/internal/jobs"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// SessionPruner deletes sign-in records that expired before a cutoff.
type SessionPruner interface {
	PruneExpired(ctx context.Context, before time.Time) (int64, error)
}

// AuditPruner deletes audit entries older than a cutoff.
type AuditPruner interface {
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// SessionPruneJob clears expired web and API sessions.
type SessionPruneJob struct {
	Sessions SessionPruner
	Logger   *slog.Logger
	Metrics  *jobmetrics.Metrics
	clock    func() time.Time
}

// NewSessionPruneJob wires dependencies for the session cleanup handler.
func NewSessionPruneJob(sessions SessionPruner, logger *slog.Logger, metrics *jobmetrics.Metrics) *SessionPruneJob {
	return &SessionPruneJob{Sessions: sessions, Logger: logger, Metrics: metrics, clock: utcNow}
}

// Handle processes TaskSessionsPrune.
func (j *SessionPruneJob) Handle(ctx context.Context, _ *asynq.Task) (err error) {
	if j == nil || j.Sessions == nil {
		return errors.New("sessions prune: handler not configured")
	}
	metrics := metricsOrDefault(j.Metrics)
	tracker := metrics.Track(TaskSessionsPrune)
	defer func() { err = tracker.End(err) }()

	n, err := j.Sessions.PruneExpired(ctx, j.clock())
	if err != nil {
		return fmt.Errorf("sessions prune: %w", err)
	}
	metrics.AddRemoved(TaskSessionsPrune, n)
	loggerOrDefault(j.Logger).Info("expired sessions pruned", slog.Int64("removed", n))
	return nil
}

// AuditPruneJob enforces the audit log retention window.
type AuditPruneJob struct {
	Audit     AuditPruner
	Retention time.Duration
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
	clock     func() time.Time
}

// NewAuditPruneJob wires dependencies for the retention handler.
func NewAuditPruneJob(audit AuditPruner, retention time.Duration, logger *slog.Logger, metrics *jobmetrics.Metrics) *AuditPruneJob {
	return &AuditPruneJob{Audit: audit, Retention: retention, Logger: logger, Metrics: metrics, clock: utcNow}
}

// Handle processes TaskAuditPrune.
func (j *AuditPruneJob) Handle(ctx context.Context, t *asynq.Task) (err error) {
	if j == nil || j.Audit == nil {
		return errors.New("audit prune: handler not configured")
	}
	var payload AuditPrunePayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("audit prune: decode payload: %v: %w", err, asynq.SkipRetry)
		}
	}
	retention := j.Retention
	if payload.RetentionDays > 0 {
		retention = time.Duration(payload.RetentionDays) * 24 * time.Hour
	}
	if retention <= 0 {
		return fmt.Errorf("audit prune: retention must be positive: %w", asynq.SkipRetry)
	}

	metrics := metricsOrDefault(j.Metrics)
	tracker := metrics.Track(TaskAuditPrune)
	defer func() { err = tracker.End(err) }()

	cutoff := j.clock().Add(-retention)
	n, err := j.Audit.PruneBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("audit prune: %w", err)
	}
	metrics.AddRemoved(TaskAuditPrune, n)
	loggerOrDefault(j.Logger).Info("audit entries pruned", slog.Int64("removed", n), slog.Time("cutoff", cutoff))
	return nil
}

func utcNow() time.Time { return time.Now().UTC() }

func metricsOrDefault(m *jobmetrics.Metrics) *jobmetrics.Metrics {
	if m != nil {
		return m
	}
	return defaultJobMetrics
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.Default()
}
