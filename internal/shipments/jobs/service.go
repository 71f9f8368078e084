package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/freightdesk/freightdesk/internal/masterdata/shared"
	rootshared "github.com/freightdesk/freightdesk/internal/shared"
	"github.com/freightdesk/freightdesk/internal/shipments/numbering"
)

type Service struct {
	repo    Repository
	numbers numbering.Generator
	now     func() time.Time
}

func NewService(repo Repository, numbers numbering.Generator) *Service {
	return &Service{repo: repo, numbers: numbers, now: time.Now}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Job, int, error) {
	jobs, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Job, error) {
	if id <= 0 {
		return Job{}, shared.InvalidID("job", id)
	}
	j, err := s.repo.Get(ctx, id)
	if err != nil {
		return Job{}, fmt.Errorf("get job: %w", rootshared.TranslatePgError(err))
	}
	return j, nil
}

// Create numbers the job when no number was supplied and opens it.
func (s *Service) Create(ctx context.Context, job Job) (Job, error) {
	job = s.normalize(job)
	job.JobNumber = s.numbers.Ensure(job.JobNumber, numbering.PrefixJob)
	if job.Status == "" {
		job.Status = StatusOpen
	}
	if err := s.validate(job); err != nil {
		return job, err
	}
	created, err := s.repo.Create(ctx, job)
	if err != nil {
		return job, fmt.Errorf("create job: %w", rootshared.TranslatePgError(err))
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, job Job) (Job, error) {
	if id <= 0 {
		return job, shared.InvalidID("job", id)
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return job, err
	}
	job = s.normalize(job)
	if job.JobNumber == "" {
		job.JobNumber = current.JobNumber
	}
	if job.Status == "" {
		job.Status = current.Status
	}
	if err := s.validate(job); err != nil {
		return job, err
	}
	if err := checkTransition(current.Status, job.Status); err != nil {
		return job, err
	}
	job.ClosedDate = s.closedDate(current, job.Status)
	updated, err := s.repo.Update(ctx, id, job)
	if err != nil {
		return job, fmt.Errorf("update job: %w", rootshared.TranslatePgError(err))
	}
	return updated, nil
}

// UpdateStatus moves a job through open, invoiced and closed.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (Job, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !validStatus(status) {
		return Job{}, rootshared.NewValidationError(map[string]string{"status": "Status must be one of: open, invoiced, closed"})
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return Job{}, err
	}
	if err := checkTransition(current.Status, status); err != nil {
		return Job{}, err
	}
	updated, err := s.repo.UpdateStatus(ctx, id, status, s.closedDate(current, status))
	if err != nil {
		return Job{}, fmt.Errorf("update job status: %w", rootshared.TranslatePgError(err))
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.InvalidID("job", id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete job: %w", rootshared.TranslatePgError(err))
	}
	return nil
}

func (s *Service) closedDate(current Job, status string) *time.Time {
	if status != StatusClosed {
		return nil
	}
	if current.ClosedDate != nil {
		return current.ClosedDate
	}
	now := s.now()
	return &now
}
