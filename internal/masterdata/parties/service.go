package parties

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

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Party, int, error) {
	parties, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("list parties: %w", err)
	}
	return parties, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Party, error) {
	if id <= 0 {
		return Party{}, shared.InvalidID("party", id)
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Party{}, fmt.Errorf("get party: %w", rootshared.TranslatePgError(err))
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, party Party) (Party, error) {
	party = normalize(party)
	if err := s.validate(party); err != nil {
		return party, err
	}
	created, err := s.repo.Create(ctx, party)
	if err != nil {
		return party, fmt.Errorf("create party: %w", rootshared.TranslatePgError(err))
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, party Party) (Party, error) {
	if id <= 0 {
		return party, shared.InvalidID("party", id)
	}
	party = normalize(party)
	if err := s.validate(party); err != nil {
		return party, err
	}
	updated, err := s.repo.Update(ctx, id, party)
	if err != nil {
		return party, fmt.Errorf("update party: %w", rootshared.TranslatePgError(err))
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.InvalidID("party", id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete party: %w", rootshared.TranslatePgError(err))
	}
	return nil
}
