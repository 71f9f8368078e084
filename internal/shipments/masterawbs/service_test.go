package masterawbs

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightdesk/freightdesk/internal/masterdata/shared"
	rootshared "github.com/freightdesk/freightdesk/internal/shared"
	"github.com/freightdesk/freightdesk/internal/shipments/numbering"
)

type memRepo struct {
	items map[int64]MasterAWB
	next  int64
}

func (m *memRepo) List(context.Context, shared.ListFilters) ([]MasterAWB, int, error) {
	var out []MasterAWB
	for _, v := range m.items {
		out = append(out, v)
	}
	return out, len(out), nil
}

func (m *memRepo) Get(_ context.Context, id int64) (MasterAWB, error) {
	v, ok := m.items[id]
	if !ok {
		return MasterAWB{}, pgx.ErrNoRows
	}
	return v, nil
}

func (m *memRepo) Create(_ context.Context, v MasterAWB) (MasterAWB, error) {
	m.next++
	v.ID = m.next
	m.items[v.ID] = v
	return v, nil
}

func (m *memRepo) Update(_ context.Context, id int64, v MasterAWB) (MasterAWB, error) {
	v.ID = id
	m.items[id] = v
	return v, nil
}

func (m *memRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

func newService() *Service {
	clock := func() time.Time { return time.Date(2024, 12, 1, 8, 30, 0, 0, time.UTC) }
	return NewService(&memRepo{items: map[int64]MasterAWB{}}, numbering.Generator{Now: clock})
}

func TestCreateDefaultsNumberAndDraft(t *testing.T) {
	svc := newService()

	m, err := svc.Create(context.Background(), MasterAWB{JobID: 1, CarrierID: 2, IssueDate: time.Now(), IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "MAWB-202412010830", m.MasterNumber)
	assert.Equal(t, StatusDraft, m.Status)
}

func TestCreateRequiresJobAndCarrier(t *testing.T) {
	svc := newService()

	_, err := svc.Create(context.Background(), MasterAWB{IssueDate: time.Now()})
	require.ErrorIs(t, err, rootshared.ErrValidation)
	fields := rootshared.FieldErrors(err)
	assert.Equal(t, "Job is required", fields["job_id"])
	assert.Equal(t, "Carrier is required", fields["carrier_id"])
}

func TestCancelledCannotBeReinstated(t *testing.T) {
	svc := newService()
	m, err := svc.Create(context.Background(), MasterAWB{JobID: 1, CarrierID: 2, IssueDate: time.Now(), Status: StatusCancelled})
	require.NoError(t, err)

	m.Status = StatusIssued
	_, err = svc.Update(context.Background(), m.ID, m)
	require.ErrorIs(t, err, rootshared.ErrValidation)
	assert.Equal(t, "Cancelled AWBs cannot be reinstated", rootshared.FieldErrors(err)["status"])
}

func TestDeleteMissing(t *testing.T) {
	svc := newService()
	require.ErrorIs(t, svc.Delete(context.Background(), 7), rootshared.ErrNotFound)
	require.ErrorIs(t, svc.Delete(context.Background(), -1), rootshared.ErrInvalidID)
}
