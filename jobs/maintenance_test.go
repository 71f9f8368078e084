package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jobmetrics "github.com/freightdesk/freightdesk/internal/jobs"
)

type stubPruner struct {
	cutoff time.Time
	n      int64
	err    error
}

func (s *stubPruner) PruneExpired(_ context.Context, before time.Time) (int64, error) {
	s.cutoff = before
	return s.n, s.err
}

func (s *stubPruner) PruneBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.cutoff = cutoff
	return s.n, s.err
}

var fixedNow = time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC)

func TestSessionPruneUsesNow(t *testing.T) {
	p := &stubPruner{n: 4}
	job := NewSessionPruneJob(p, nil, jobmetrics.NewMetrics(prometheus.NewRegistry()))
	job.clock = func() time.Time { return fixedNow }

	require.NoError(t, job.Handle(context.Background(), NewSessionsPruneTask()))
	assert.Equal(t, fixedNow, p.cutoff)
}

func TestSessionPrunePropagatesError(t *testing.T) {
	job := NewSessionPruneJob(&stubPruner{err: errors.New("db down")}, nil, jobmetrics.NewMetrics(prometheus.NewRegistry()))
	err := job.Handle(context.Background(), NewSessionsPruneTask())
	assert.ErrorContains(t, err, "db down")
}

func TestAuditPruneRetention(t *testing.T) {
	p := &stubPruner{n: 10}
	job := NewAuditPruneJob(p, 90*24*time.Hour, nil, jobmetrics.NewMetrics(prometheus.NewRegistry()))
	job.clock = func() time.Time { return fixedNow }

	task, err := NewAuditPruneTask(AuditPrunePayload{})
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
	assert.Equal(t, fixedNow.AddDate(0, 0, -90), p.cutoff)

	task, err = NewAuditPruneTask(AuditPrunePayload{RetentionDays: 7})
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
	assert.Equal(t, fixedNow.AddDate(0, 0, -7), p.cutoff)
}

func TestAuditPruneBadPayloadSkipsRetry(t *testing.T) {
	job := NewAuditPruneJob(&stubPruner{}, time.Hour, nil, jobmetrics.NewMetrics(prometheus.NewRegistry()))
	err := job.Handle(context.Background(), asynq.NewTask(TaskAuditPrune, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestAuditPruneRequiresRetention(t *testing.T) {
	job := NewAuditPruneJob(&stubPruner{}, 0, nil, jobmetrics.NewMetrics(prometheus.NewRegistry()))
	err := job.Handle(context.Background(), asynq.NewTask(TaskAuditPrune, nil))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
