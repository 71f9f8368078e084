package ports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightdesk/freightdesk/internal/masterdata/shared"
	rootshared "github.com/freightdesk/freightdesk/internal/shared"
)

type repoFunc struct {
	create func(Port) (Port, error)
}

func (r repoFunc) List(context.Context, shared.ListFilters) ([]Port, int, error) { return nil, 0, nil }
func (r repoFunc) Get(context.Context, int64) (Port, error) { return Port{}, nil }
func (r repoFunc) Create(_ context.Context, p Port) (Port, error) { return r.create(p) }
func (r repoFunc) Update(_ context.Context, _ int64, p Port) (Port, error) { return r.create(p) }
func (r repoFunc) Delete(context.Context, int64) error { return nil }

func TestCreatePort(t *testing.T) {
	var got Port
	svc := NewService(repoFunc{create: func(p Port) (Port, error) {
		got = p
		p.ID = 9
		return p, nil
	}})

	p, err := svc.Create(context.Background(), Port{Name: "Jomo Kenyatta Intl", Code: "nbo", Type: "AIRPORT", CityID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(9), p.ID)
	assert.Equal(t, "NBO", got.Code)
	assert.Equal(t, TypeAirport, got.Type)
}

func TestCreatePortValidation(t *testing.T) {
	svc := NewService(repoFunc{create: func(p Port) (Port, error) {
		t.Fatal("repository must not be called")
		return p, nil
	}})

	_, err := svc.Create(context.Background(), Port{Name: "X", Code: "", Type: "dock"})
	require.ErrorIs(t, err, rootshared.ErrValidation)
	fields := rootshared.FieldErrors(err)
	assert.Equal(t, "Name must be at least 2 characters", fields["name"])
	assert.Equal(t, "Code is required", fields["code"])
	assert.Equal(t, "Type must be one of: port, airport", fields["type"])
	assert.Equal(t, "City is required", fields["city_id"])
}

func TestGetRejectsZeroID(t *testing.T) {
	svc := NewService(repoFunc{})

	_, err := svc.Get(context.Background(), 0)
	assert.ErrorIs(t, err, rootshared.ErrInvalidID)
}
