package crud

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightdesk/freightdesk/internal/rbac"
	"github.com/freightdesk/freightdesk/internal/shared"
)

type apiEnvelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func decodeAPI(t *testing.T, body string) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	return env
}

func TestAPIListReturnsPage(t *testing.T) {
	h := newHarness(t, rbac.RoleAdmin, widget{ID: 1, Name: "Crate"}, widget{ID: 2, Name: "Drum"})

	rec := h.do(http.MethodGet, "/api/v1/widgets?page=1&limit=10", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeAPI(t, rec.Body.String())
	assert.True(t, env.Success)
	assert.Equal(t, "Widgets retrieved successfully", env.Message)

	page, err := shared.DecodePage[widget](env.Data)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, "Drum", page.Items[1].Name)
}

func TestAPISearchReturnsBareArray(t *testing.T) {
	h := newHarness(t, rbac.RoleAdmin, widget{ID: 1, Name: "Crate"}, widget{ID: 2, Name: "Drum"})

	rec := h.do(http.MethodGet, "/api/v1/widgets/search?search=dru", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []widget
	require.NoError(t, json.Unmarshal(decodeAPI(t, rec.Body.String()).Data, &items))
	assert.Equal(t, []widget{{ID: 2, Name: "Drum"}}, items)

	rec = h.do(http.MethodGet, "/api/v1/widgets/search?search=none", nil, "")
	assert.JSONEq(t, `[]`, string(decodeAPI(t, rec.Body.String()).Data))
}

func TestAPICreate(t *testing.T) {
	h := newHarness(t, rbac.RoleAdmin)

	rec := h.do(http.MethodPost, "/api/v1/widgets", strings.NewReader(`{"name":"Crate","is_active":true}`), "application/json")
	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeAPI(t, rec.Body.String())
	assert.Equal(t, "Widget created successfully", env.Message)
	assert.JSONEq(t, `{"id":1,"name":"Crate","is_active":true}`, string(env.Data))
	require.Len(t, h.audit.entries, 1)
	assert.Equal(t, "ops@example.com", h.audit.entries[0].Actor)
}

func TestAPICreateRejectsBadInput(t *testing.T) {
	h := newHarness(t, rbac.RoleAdmin)

	rec := h.do(http.MethodPost, "/api/v1/widgets", strings.NewReader(`{"name":"Crate","colour":"red"}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decodeAPI(t, rec.Body.String()).Success)

	rec = h.do(http.MethodPost, "/api/v1/widgets", strings.NewReader(`{"name":""}`), "application/json")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decodeAPI(t, rec.Body.String())
	assert.Equal(t, "Name is required", env.Errors["name"])
	assert.Empty(t, h.audit.entries)
}

func TestAPIUpdateAndDelete(t *testing.T) {
	h := newHarness(t, rbac.RoleAdmin, widget{ID: 5, Name: "Crate"})

	rec := h.do(http.MethodPatch, "/api/v1/widgets/5", strings.NewReader(`{"name":"Pallet"}`), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Pallet", h.store.items[5].Name)

	rec = h.do(http.MethodDelete, "/api/v1/widgets/5", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Widget deleted successfully", decodeAPI(t, rec.Body.String()).Message)
	assert.Empty(t, h.store.items)

	rec = h.do(http.MethodGet, "/api/v1/widgets/5", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPIDeleteInUse(t *testing.T) {
	h := newHarness(t, rbac.RoleAdmin, widget{ID: 5, Name: "Crate"})
	h.store.delErr = fmt.Errorf("delete widget: %w", shared.ErrInUse)

	rec := h.do(http.MethodDelete, "/api/v1/widgets/5", nil, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "The record is still referenced by other records", decodeAPI(t, rec.Body.String()).Message)
}

func TestAPIRejectsBadID(t *testing.T) {
	h := newHarness(t, rbac.RoleAdmin)

	rec := h.do(http.MethodGet, "/api/v1/widgets/zero", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid widget ID", decodeAPI(t, rec.Body.String()).Message)
}

func TestAPIPermissions(t *testing.T) {
	h := newHarness(t, rbac.RoleAccounts, widget{ID: 5, Name: "Crate"})

	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/v1/widgets/5", nil, "").Code)
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodDelete, "/api/v1/widgets/5", nil, "").Code)
	assert.Contains(t, h.store.items, int64(5))
}
