package commodities

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightdesk/freightdesk/internal/masterdata/shared"
	rootshared "github.com/freightdesk/freightdesk/internal/shared"
)

type memRepo struct {
	items map[int64]Commodity
	err   error
}

func (m *memRepo) List(context.Context, shared.ListFilters) ([]Commodity, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	out := make([]Commodity, 0, len(m.items))
	for _, c := range m.items {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (m *memRepo) Get(_ context.Context, id int64) (Commodity, error) { return m.items[id], nil }

func (m *memRepo) Create(_ context.Context, c Commodity) (Commodity, error) {
	c.ID = int64(len(m.items) + 1)
	m.items[c.ID] = c
	return c, nil
}

func (m *memRepo) Update(_ context.Context, id int64, c Commodity) (Commodity, error) {
	c.ID = id
	m.items[id] = c
	return c, nil
}

func (m *memRepo) Delete(_ context.Context, id int64) error {
	delete(m.items, id)
	return nil
}

func TestCreateCommodity(t *testing.T) {
	repo := &memRepo{items: map[int64]Commodity{}}
	svc := NewService(repo)

	c, err := svc.Create(context.Background(), Commodity{Name: "Cut flowers", Code: "flw", Category: " Perishable "})
	require.NoError(t, err)
	assert.Equal(t, "FLW", c.Code)
	assert.Equal(t, "Perishable", repo.items[c.ID].Category)
}

func TestDescriptionLength(t *testing.T) {
	svc := NewService(&memRepo{items: map[int64]Commodity{}})

	_, err := svc.Create(context.Background(), Commodity{Name: "Tea", Code: "TEA", Description: strings.Repeat("x", 501)})
	require.ErrorIs(t, err, rootshared.ErrValidation)
	assert.Equal(t, "Description must be at most 500 characters", rootshared.FieldErrors(err)["description"])
}

func TestListWrapsRepositoryError(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewService(&memRepo{err: boom})

	_, _, err := svc.List(context.Background(), shared.ListFilters{})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "list commodities")
}
