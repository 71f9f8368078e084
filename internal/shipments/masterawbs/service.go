package masterawbs

import (
	"context"
	"fmt"
	"strings"

	"github.com/freightdesk/freightdesk/internal/masterdata/shared"
	rootshared "github.com/freightdesk/freightdesk/internal/shared"
	"github.com/freightdesk/freightdesk/internal/shipments/numbering"
)

type Service struct {
	repo    Repository
	numbers numbering.Generator
}

func NewService(repo Repository, numbers numbering.Generator) *Service {
	return &Service{repo: repo, numbers: numbers}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]MasterAWB, int, error) {
	items, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("list master awbs: %w", err)
	}
	return items, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (MasterAWB, error) {
	if id <= 0 {
		return MasterAWB{}, shared.InvalidID("master awb", id)
	}
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return MasterAWB{}, fmt.Errorf("get master awb: %w", rootshared.TranslatePgError(err))
	}
	return m, nil
}

func (s *Service) Create(ctx context.Context, m MasterAWB) (MasterAWB, error) {
	m = normalize(m)
	m.MasterNumber = s.numbers.Ensure(m.MasterNumber, numbering.PrefixMasterAWB)
	if m.Status == "" {
		m.Status = StatusDraft
	}
	if err := rootshared.ValidateStruct(m); err != nil {
		return m, err
	}
	created, err := s.repo.Create(ctx, m)
	if err != nil {
		return m, fmt.Errorf("create master awb: %w", rootshared.TranslatePgError(err))
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, m MasterAWB) (MasterAWB, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return m, err
	}
	m = normalize(m)
	if m.MasterNumber == "" {
		m.MasterNumber = current.MasterNumber
	}
	if m.Status == "" {
		m.Status = current.Status
	}
	if err := rootshared.ValidateStruct(m); err != nil {
		return m, err
	}
	if current.Status == StatusCancelled && m.Status != StatusCancelled {
		return m, rootshared.NewValidationError(map[string]string{"status": "Cancelled AWBs cannot be reinstated"})
	}
	updated, err := s.repo.Update(ctx, id, m)
	if err != nil {
		return m, fmt.Errorf("update master awb: %w", rootshared.TranslatePgError(err))
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.InvalidID("master awb", id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete master awb: %w", rootshared.TranslatePgError(err))
	}
	return nil
}

func normalize(m MasterAWB) MasterAWB {
	m.MasterNumber = strings.ToUpper(strings.TrimSpace(m.MasterNumber))
	m.Status = strings.ToLower(strings.TrimSpace(m.Status))
	return m
}
