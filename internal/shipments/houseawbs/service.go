package houseawbs

import (
	"context"
	"fmt"

	"github.com/freightdesk/freightdesk/internal/masterdata/shared"
	rootshared "github.com/freightdesk/freightdesk/internal/shared"
	"github.com/freightdesk/freightdesk/internal/shipments/masterawbs"
	"github.com/freightdesk/freightdesk/internal/shipments/numbering"
)

type Service struct {
	repo    Repository
	numbers numbering.Generator
}

func NewService(repo Repository, numbers numbering.Generator) *Service {
	return &Service{repo: repo, numbers: numbers}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]HouseAWB, int, error) {
	items, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("list house awbs: %w", err)
	}
	return items, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (HouseAWB, error) {
	if id <= 0 {
		return HouseAWB{}, shared.InvalidID("house awb", id)
	}
	h, err := s.repo.Get(ctx, id)
	if err != nil {
		return HouseAWB{}, fmt.Errorf("get house awb: %w", rootshared.TranslatePgError(err))
	}
	return h, nil
}

func (s *Service) Create(ctx context.Context, h HouseAWB) (HouseAWB, error) {
	h = normalize(h)
	h.HouseNumber = s.numbers.Ensure(h.HouseNumber, numbering.PrefixHouseAWB)
	if h.Status == "" {
		h.Status = masterawbs.StatusDraft
	}
	if err := validate(h); err != nil {
		return h, err
	}
	created, err := s.repo.Create(ctx, h)
	if err != nil {
		return h, fmt.Errorf("create house awb: %w", rootshared.TranslatePgError(err))
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, h HouseAWB) (HouseAWB, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return h, err
	}
	h = normalize(h)
	if h.HouseNumber == "" {
		h.HouseNumber = current.HouseNumber
	}
	if h.Status == "" {
		h.Status = current.Status
	}
	if err := validate(h); err != nil {
		return h, err
	}
	if current.Status == masterawbs.StatusCancelled && h.Status != masterawbs.StatusCancelled {
		return h, rootshared.NewValidationError(map[string]string{"status": "Cancelled AWBs cannot be reinstated"})
	}
	updated, err := s.repo.Update(ctx, id, h)
	if err != nil {
		return h, fmt.Errorf("update house awb: %w", rootshared.TranslatePgError(err))
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.InvalidID("house awb", id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete house awb: %w", rootshared.TranslatePgError(err))
	}
	return nil
}
