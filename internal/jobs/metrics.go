// Package jobmetrics instruments the maintenance tasks run by the worker.
package jobmetrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "freightdesk_worker"

// Metrics holds the worker collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	runs        *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	removed     *prometheus.CounterVec
	lastSuccess *prometheus.GaugeVec
}

var (
	fallbackOnce sync.Once
	fallback     *Metrics
)

// NewMetrics registers the collectors on reg. A nil reg shares one set of
// collectors on the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg != nil {
		return register(reg)
	}
	fallbackOnce.Do(func() { fallback = register(prometheus.DefaultRegisterer) })
	return fallback
}

func register(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "task_runs_total",
			Help:      "Task executions by task type and outcome.",
		}, []string{"task", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "task_duration_seconds",
			Help:      "Task execution time.",
			Buckets:   []float64{.01, .05, .1, .5, 1, 5, 30, 120},
		}, []string{"task"}),
		removed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_removed_total",
			Help:      "Rows deleted by cleanup tasks.",
		}, []string{"task"}),
		lastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "task_last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}, []string{"task"}),
	}
	reg.MustRegister(m.runs, m.duration, m.removed, m.lastSuccess)
	return m
}

// Tracker times a single task run.
type Tracker struct {
	m     *Metrics
	task  string
	start time.Time
}

// Track starts timing a run of task.
func (m *Metrics) Track(task string) *Tracker {
	return &Tracker{m: m, task: task, start: time.Now()}
}

// End records the outcome of the run and returns err unchanged.
func (t *Tracker) End(err error) error {
	if t == nil || t.m == nil {
		return err
	}
	t.m.duration.WithLabelValues(t.task).Observe(time.Since(t.start).Seconds())
	if err != nil {
		t.m.runs.WithLabelValues(t.task, "error").Inc()
		return err
	}
	t.m.runs.WithLabelValues(t.task, "ok").Inc()
	t.m.lastSuccess.WithLabelValues(t.task).SetToCurrentTime()
	return nil
}

// AddRemoved counts rows a cleanup task deleted.
func (m *Metrics) AddRemoved(task string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.removed.WithLabelValues(task).Add(float64(n))
}
