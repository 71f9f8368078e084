package carriers

import (
	"context"
	"fmt"

	"github.com/freightdesk/freightdesk/internal/masterdata/shared"
	rootshared "github.com/freightdesk/freightdesk/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Carrier, int, error) {
	carriers, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("list carriers: %w", err)
	}
	return carriers, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Carrier, error) {
	if id <= 0 {
		return Carrier{}, shared.InvalidID("carrier", id)
	}
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return Carrier{}, fmt.Errorf("get carrier: %w", rootshared.TranslatePgError(err))
	}
	return c, nil
}

func (s *Service) Create(ctx context.Context, carrier Carrier) (Carrier, error) {
	carrier = normalize(carrier)
	if err := s.validate(carrier); err != nil {
		return carrier, err
	}
	created, err := s.repo.Create(ctx, carrier)
	if err != nil {
		return carrier, fmt.Errorf("create carrier: %w", rootshared.TranslatePgError(err))
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, carrier Carrier) (Carrier, error) {
	if id <= 0 {
		return carrier, shared.InvalidID("carrier", id)
	}
	carrier = normalize(carrier)
	if err := s.validate(carrier); err != nil {
		return carrier, err
	}
	updated, err := s.repo.Update(ctx, id, carrier)
	if err != nil {
		return carrier, fmt.Errorf("update carrier: %w", rootshared.TranslatePgError(err))
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.InvalidID("carrier", id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete carrier: %w", rootshared.TranslatePgError(err))
	}
	return nil
}
