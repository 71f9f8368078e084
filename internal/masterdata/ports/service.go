package ports

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

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Port, int, error) {
	ports, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("list ports: %w", err)
	}
	return ports, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Port, error) {
	if id <= 0 {
		return Port{}, shared.InvalidID("port", id)
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Port{}, fmt.Errorf("get port: %w", rootshared.TranslatePgError(err))
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, port Port) (Port, error) {
	port = normalize(port)
	if err := rootshared.ValidateStruct(port); err != nil {
		return port, err
	}
	created, err := s.repo.Create(ctx, port)
	if err != nil {
		return port, fmt.Errorf("create port: %w", rootshared.TranslatePgError(err))
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, port Port) (Port, error) {
	if id <= 0 {
		return port, shared.InvalidID("port", id)
	}
	port = normalize(port)
	if err := rootshared.ValidateStruct(port); err != nil {
		return port, err
	}
	updated, err := s.repo.Update(ctx, id, port)
	if err != nil {
		return port, fmt.Errorf("update port: %w", rootshared.TranslatePgError(err))
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.InvalidID("port", id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete port: %w", rootshared.TranslatePgError(err))
	}
	return nil
}

func normalize(p Port) Port {
	p.Name = strings.TrimSpace(p.Name)
	p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
	p.Type = strings.ToLower(strings.TrimSpace(p.Type))
	return p
}
