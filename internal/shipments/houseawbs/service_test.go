package houseawbs

import (
	"context"
	"net/url"
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
	items map[int64]HouseAWB
	next  int64
}

func (m *memRepo) List(context.Context, shared.ListFilters) ([]HouseAWB, int, error) {
	var out []HouseAWB
	for _, v := range m.items {
		out = append(out, v)
	}
	return out, len(out), nil
}

func (m *memRepo) Get(_ context.Context, id int64) (HouseAWB, error) {
	v, ok := m.items[id]
	if !ok {
		return HouseAWB{}, pgx.ErrNoRows
	}
	return v, nil
}

func (m *memRepo) Create(_ context.Context, v HouseAWB) (HouseAWB, error) {
	m.next++
	v.ID = m.next
	m.items[v.ID] = v
	return v, nil
}

func (m *memRepo) Update(_ context.Context, id int64, v HouseAWB) (HouseAWB, error) {
	v.ID = id
	m.items[id] = v
	return v, nil
}

func (m *memRepo) Delete(_ context.Context, id int64) error {
	delete(m.items, id)
	return nil
}

func newService() *Service {
	clock := func() time.Time { return time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC) }
	return NewService(&memRepo{items: map[int64]HouseAWB{}}, numbering.Generator{Now: clock})
}

func house() HouseAWB {
	return HouseAWB{
		JobID:       1,
		ShipperID:   2,
		ConsigneeID: 3,
		IssueDate:   time.Now(),
		Items: []Item{
			{CommodityID: 4, Description: "Cotton shirts", Quantity: 10, Unit: "ctn", Weight: 120.5, PackageCount: 10, Currency: "usd"},
			{},
		},
	}
}

func TestCreateNumbersAndDropsBlankLines(t *testing.T) {
	svc := newService()

	h, err := svc.Create(context.Background(), house())
	require.NoError(t, err)
	assert.Equal(t, "HAWB-202501020304", h.HouseNumber)
	assert.Equal(t, "draft", h.Status)
	require.Len(t, h.Items, 1)
	assert.Equal(t, "CTN", h.Items[0].Unit)
	assert.Equal(t, "USD", h.Items[0].Currency)
}

func TestCreateRequiresItems(t *testing.T) {
	svc := newService()
	in := house()
	in.Items = nil

	_, err := svc.Create(context.Background(), in)
	require.ErrorIs(t, err, rootshared.ErrValidation)
	assert.Equal(t, "At least one item is required", rootshared.FieldErrors(err)["items"])
}

func TestItemErrorsAreKeyedByLine(t *testing.T) {
	svc := newService()
	in := house()
	in.Items = []Item{
		{CommodityID: 4, Description: "ok", Quantity: 1, Unit: "pcs"},
		{CommodityID: 4, Description: "bad", Quantity: 0, Unit: "pcs", Currency: "dollars"},
	}

	_, err := svc.Create(context.Background(), in)
	require.ErrorIs(t, err, rootshared.ErrValidation)
	fields := rootshared.FieldErrors(err)
	assert.Equal(t, "Quantity is required", fields["items[1].quantity"])
	assert.Equal(t, "Currency must be exactly 3 characters", fields["items[1].currency"])
	assert.NotContains(t, fields, "items[0].quantity")
}

func TestTotals(t *testing.T) {
	h := HouseAWB{Items: []Item{{Weight: 10, Volume: 1.5, PackageCount: 2}, {Weight: 5, Volume: 0.5, PackageCount: 3}}}
	weight, volume, packages := h.Totals()
	assert.InDelta(t, 15.0, weight, 0.0001)
	assert.InDelta(t, 2.0, volume, 0.0001)
	assert.Equal(t, 5, packages)
}

func TestDecodeReadsItemLines(t *testing.T) {
	form := url.Values{
		"job_id":                 {"1"},
		"shipper_id":             {"2"},
		"consignee_id":           {"3"},
		"issue_date":             {"2025-01-02"},
		"items[0].commodity_id":  {"9"},
		"items[0].description":   {"Shoes"},
		"items[0].quantity":      {"4"},
		"items[0].unit":          {"pairs"},
		"items[2].commodity_id":  {"8"},
		"items[2].description":   {"Socks"},
		"items[2].quantity":      {"12"},
		"items[2].unit":          {"pcs"},
		"items[2].package_count": {"1"},
	}

	h, err := Resource().Decode(form)
	require.NoError(t, err)
	require.Len(t, h.Items, 2)
	assert.Equal(t, int64(9), h.Items[0].CommodityID)
	assert.Equal(t, "Socks", h.Items[1].Description)
	assert.Equal(t, 1, h.Items[1].PackageCount)
	assert.Equal(t, 2025, h.IssueDate.Year())
}
