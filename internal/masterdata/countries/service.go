package countries

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

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Country, int, error) {
	countries, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("list countries: %w", err)
	}
	return countries, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Country, error) {
	if id <= 0 {
		return Country{}, shared.InvalidID("country", id)
	}
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return Country{}, fmt.Errorf("get country: %w", rootshared.TranslatePgError(err))
	}
	return c, nil
}

func (s *Service) Create(ctx context.Context, country Country) (Country, error) {
	country = normalize(country)
	if err := s.validate(country); err != nil {
		return country, err
	}
	created, err := s.repo.Create(ctx, country)
	if err != nil {
		return country, fmt.Errorf("create country: %w", rootshared.TranslatePgError(err))
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, country Country) (Country, error) {
	if id <= 0 {
		return country, shared.InvalidID("country", id)
	}
	country = normalize(country)
	if err := s.validate(country); err != nil {
		return country, err
	}
	updated, err := s.repo.Update(ctx, id, country)
	if err != nil {
		return country, fmt.Errorf("update country: %w", rootshared.TranslatePgError(err))
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.InvalidID("country", id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete country: %w", rootshared.TranslatePgError(err))
	}
	return nil
}
