package countries

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightdesk/freightdesk/internal/masterdata/shared"
	rootshared "github.com/freightdesk/freightdesk/internal/shared"
)

type memRepo struct {
	items  map[int64]Country
	nextID int64
	err    error
}

func newMemRepo() *memRepo {
	return &memRepo{items: map[int64]Country{}}
}

func (m *memRepo) List(_ context.Context, _ shared.ListFilters) ([]Country, int, error) {
	var out []Country
	for _, c := range m.items {
		out = append(out, c)
	}
	return out, len(out), m.err
}

func (m *memRepo) Get(_ context.Context, id int64) (Country, error) {
	c, ok := m.items[id]
	if !ok {
		return Country{}, pgx.ErrNoRows
	}
	return c, nil
}

func (m *memRepo) Create(_ context.Context, c Country) (Country, error) {
	if m.err != nil {
		return Country{}, m.err
	}
	m.nextID++
	c.ID = m.nextID
	m.items[c.ID] = c
	return c, nil
}

func (m *memRepo) Update(_ context.Context, id int64, c Country) (Country, error) {
	if _, ok := m.items[id]; !ok {
		return Country{}, pgx.ErrNoRows
	}
	c.ID = id
	m.items[id] = c
	return c, nil
}

func (m *memRepo) Delete(_ context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

func TestCreateNormalizesAndValidates(t *testing.T) {
	svc := NewService(newMemRepo())

	created, err := svc.Create(context.Background(), Country{Name: " Kenya ", Code: "ken", Currency: "kes", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "Kenya", created.Name)
	assert.Equal(t, "KEN", created.Code)
	assert.Equal(t, "KES", created.Currency)

	_, err = svc.Create(context.Background(), Country{Name: "K", Code: "KE"})
	require.ErrorIs(t, err, rootshared.ErrValidation)
	fields := rootshared.FieldErrors(err)
	assert.Equal(t, "Name must be at least 2 characters", fields["name"])
	assert.Equal(t, "Code must be exactly 3 characters", fields["code"])
}

func TestGetMissingIsNotFound(t *testing.T) {
	svc := NewService(newMemRepo())

	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, rootshared.ErrNotFound)

	_, err = svc.Get(context.Background(), 0)
	assert.ErrorIs(t, err, rootshared.ErrInvalidID)
}

func TestDeleteReferencedCountry(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	created, err := svc.Create(context.Background(), Country{Name: "Kenya", Code: "KEN"})
	require.NoError(t, err)

	repo.err = &pgconn.PgError{Code: "23503", ConstraintName: "cities_country_id_fkey"}
	err = svc.Delete(context.Background(), created.ID)

	assert.ErrorIs(t, err, rootshared.ErrInUse)
	assert.Equal(t, "The record is still referenced by other records", rootshared.UserSafeMessage(err))
}

func TestCreateDuplicateCode(t *testing.T) {
	repo := newMemRepo()
	repo.err = &pgconn.PgError{Code: "23505", ConstraintName: "countries_code_key"}
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), Country{Name: "Kenya", Code: "KEN"})

	assert.True(t, errors.Is(err, rootshared.ErrDuplicate))
}
