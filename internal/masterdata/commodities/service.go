package commodities

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

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Commodity, int, error) {
	list, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("list commodities: %w", err)
	}
	return list, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Commodity, error) {
	if id <= 0 {
		return Commodity{}, shared.InvalidID("commodity", id)
	}
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return Commodity{}, fmt.Errorf("get commodity: %w", rootshared.TranslatePgError(err))
	}
	return c, nil
}

func (s *Service) Create(ctx context.Context, c Commodity) (Commodity, error) {
	c = normalize(c)
	if err := rootshared.ValidateStruct(c); err != nil {
		return c, err
	}
	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return c, fmt.Errorf("create commodity: %w", rootshared.TranslatePgError(err))
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, c Commodity) (Commodity, error) {
	if id <= 0 {
		return c, shared.InvalidID("commodity", id)
	}
	c = normalize(c)
	if err := rootshared.ValidateStruct(c); err != nil {
		return c, err
	}
	updated, err := s.repo.Update(ctx, id, c)
	if err != nil {
		return c, fmt.Errorf("update commodity: %w", rootshared.TranslatePgError(err))
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.InvalidID("commodity", id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete commodity: %w", rootshared.TranslatePgError(err))
	}
	return nil
}

func normalize(c Commodity) Commodity {
	c.Name = strings.TrimSpace(c.Name)
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	c.Category = strings.TrimSpace(c.Category)
	c.Description = strings.TrimSpace(c.Description)
	return c
}
