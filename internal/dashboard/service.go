// Package dashboard computes the landing page counters.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/freightdesk/freightdesk/internal/shared"
)

const recentLimit = 10

// Metrics is the dashboard summary.
type Metrics struct {
	OpenJobs         int               `json:"open_jobs"`
	OpenJobsThisWeek int               `json:"open_jobs_this_week"`
	PendingAWBs      int               `json:"pending_awbs"`
	PendingToday     int               `json:"pending_today"`
	Recent           []shared.AuditLog `json:"recent"`
	AsOf             time.Time         `json:"as_of"`
}

// Repository counts operational records.
type Repository interface {
	CountOpenJobs(ctx context.Context, since time.Time) (int, error)
	CountDraftAWBs(ctx context.Context, since time.Time) (int, error)
}

// Service assembles Metrics.
type Service struct {
	repo  Repository
	audit shared.AuditRecorder
	cache *Cache
	now   func() time.Time
}

// NewService builds a Service. cache may be nil.
func NewService(repo Repository, audit shared.AuditRecorder, cache *Cache) *Service {
	return &Service{repo: repo, audit: audit, cache: cache, now: time.Now}
}

// Metrics runs the counters concurrently and returns the first failure.
func (s *Service) Metrics(ctx context.Context) (Metrics, error) {
	if m, ok := s.cache.Get(ctx); ok {
		return m, nil
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := today.AddDate(0, 0, -int((today.Weekday()+6)%7))

	m := Metrics{AsOf: now}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		m.OpenJobs, err = s.repo.CountOpenJobs(ctx, time.Time{})
		return wrap("open jobs", err)
	})
	g.Go(func() (err error) {
		m.OpenJobsThisWeek, err = s.repo.CountOpenJobs(ctx, weekStart)
		return wrap("open jobs this week", err)
	})
	g.Go(func() (err error) {
		m.PendingAWBs, err = s.repo.CountDraftAWBs(ctx, time.Time{})
		return wrap("pending awbs", err)
	})
	g.Go(func() (err error) {
		m.PendingToday, err = s.repo.CountDraftAWBs(ctx, today)
		return wrap("pending today", err)
	})
	if s.audit != nil {
		g.Go(func() (err error) {
			m.Recent, err = s.audit.Recent(ctx, recentLimit)
			return wrap("recent activity", err)
		})
	}
	if err := g.Wait(); err != nil {
		return Metrics{}, err
	}
	s.cache.Set(ctx, m)
	return m, nil
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("dashboard %s: %w", what, err)
	}
	return nil
}

// PGRepository implements Repository with PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PGRepository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// CountOpenJobs counts open jobs dated on or after since.
func (r *PGRepository) CountOpenJobs(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE status = 'open' AND is_active AND job_date >= $1`, since).Scan(&n)
	return n, err
}

// CountDraftAWBs counts draft master and house AWBs created on or after since.
func (r *PGRepository) CountDraftAWBs(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM master_awbs WHERE status = 'draft' AND created_at >= $1)
		     + (SELECT COUNT(*) FROM house_awbs WHERE status = 'draft' AND created_at >= $1)`, since).Scan(&n)
	return n, err
}
