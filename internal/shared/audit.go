package shared

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditLog represents a record stored in audit_logs.
type AuditLog struct {
	ActorID  int64          `json:"actor_id,omitempty"`
	Actor    string         `json:"actor"`
	Action   string         `json:"action"`
	Entity   string         `json:"entity"`
	EntityID string         `json:"entity_id"`
	Meta     map[string]any `json:"meta,omitempty"`
	At       time.Time      `json:"at"`
}

// AuditRecorder persists audit entries. Implementations must be safe for concurrent use.
type AuditRecorder interface {
	Record(ctx context.Context, log AuditLog) error
	Recent(ctx context.Context, limit int) ([]AuditLog, error)
}

// AuditLogger writes records into audit_logs.
type AuditLogger struct {
	pool *pgxpool.Pool
}

// NewAuditLogger returns a new AuditLogger.
func NewAuditLogger(pool *pgxpool.Pool) *AuditLogger {
	return &AuditLogger{pool: pool}
}

// Record persists the log entry.
func (l *AuditLogger) Record(ctx context.Context, log AuditLog) error {
	if l == nil {
		return errors.New("audit logger not initialised")
	}
	if log.Action == "" || log.Entity == "" || log.EntityID == "" {
		return errors.New("audit log requires action/entity/entity_id")
	}
	metaJSON, err := json.Marshal(log.Meta)
	if err != nil {
		return err
	}
	at := log.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err = l.pool.Exec(ctx, `INSERT INTO audit_logs (actor_id, actor, action, entity, entity_id, meta, occurred_at)
		VALUES (NULLIF($1, 0), $2, $3, $4, $5, $6, $7)`, log.ActorID, log.Actor, log.Action, log.Entity, log.EntityID, metaJSON, at)
	return err
}

// Recent returns the newest entries first.
func (l *AuditLogger) Recent(ctx context.Context, limit int) ([]AuditLog, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := l.pool.Query(ctx, `SELECT COALESCE(actor_id, 0), actor, action, entity, entity_id, occurred_at
		FROM audit_logs ORDER BY occurred_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var logs []AuditLog
	for rows.Next() {
		var entry AuditLog
		if err := rows.Scan(&entry.ActorID, &entry.Actor, &entry.Action, &entry.Entity, &entry.EntityID, &entry.At); err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

// PruneBefore deletes entries older than cutoff and reports how many were removed.
func (l *AuditLogger) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := l.pool.Exec(ctx, `DELETE FROM audit_logs WHERE occurred_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

var _ AuditRecorder = (*AuditLogger)(nil)
