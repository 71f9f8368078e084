package cities

import (
	"context"
	"fmt"
	"strings"

	"github.com/freightdesk/freightdesk/internal/masterdata/shared"
	rootshared "github.com/freightdesk/freightdesk/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]City, int, error) {
	cities, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("list cities: %w", err)
	}
	return cities, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (City, error) {
	if id <= 0 {
		return City{}, shared.InvalidID("city", id)
	}
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return City{}, fmt.Errorf("get city: %w", rootshared.TranslatePgError(err))
	}
	return c, nil
}

func (s *Service) Create(ctx context.Context, city City) (City, error) {
	city.Name = strings.TrimSpace(city.Name)
	city.Code = strings.ToUpper(strings.TrimSpace(city.Code))
	if err := rootshared.ValidateStruct(city); err != nil {
		return city, err
	}
	created, err := s.repo.Create(ctx, city)
	if err != nil {
		return city, fmt.Errorf("create city: %w", rootshared.TranslatePgError(err))
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, city City) (City, error) {
	if id <= 0 {
		return city, shared.InvalidID("city", id)
	}
	city.Name = strings.TrimSpace(city.Name)
	city.Code = strings.ToUpper(strings.TrimSpace(city.Code))
	if err := rootshared.ValidateStruct(city); err != nil {
		return city, err
	}
	updated, err := s.repo.Update(ctx, id, city)
	if err != nil {
		return city, fmt.Errorf("update city: %w", rootshared.TranslatePgError(err))
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.InvalidID("city", id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete city: %w", rootshared.TranslatePgError(err))
	}
	return nil
}
