package crud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdshared "github.com/freightdesk/freightdesk/internal/masterdata/shared"
	"github.com/freightdesk/freightdesk/internal/rbac"
	"github.com/freightdesk/freightdesk/internal/shared"
	"github.com/freightdesk/freightdesk/internal/ui"
	"github.com/freightdesk/freightdesk/internal/view"
)

type widget struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

type memoryWidgets struct {
	mu      sync.Mutex
	items   map[int64]widget
	next    int64
	listErr error
	delErr  error
}

func newMemoryWidgets(items ...widget) *memoryWidgets {
	m := &memoryWidgets{items: map[int64]widget{}}
	for _, it := range items {
		m.items[it.ID] = it
		m.next = max(m.next, it.ID)
	}
	return m
}

func (m *memoryWidgets) List(_ context.Context, f mdshared.ListFilters) ([]widget, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	var out []widget
	for _, it := range m.items {
		if f.IsActive != nil && it.IsActive != *f.IsActive {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(it.Name), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (m *memoryWidgets) Get(_ context.Context, id int64) (widget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return widget{}, fmt.Errorf("widget %d: %w", id, shared.ErrNotFound)
	}
	return it, nil
}

func (m *memoryWidgets) Create(_ context.Context, w widget) (widget, error) {
	if err := validateWidget(w); err != nil {
		return w, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	w.ID = m.next
	m.items[w.ID] = w
	return w, nil
}

func (m *memoryWidgets) Update(_ context.Context, id int64, w widget) (widget, error) {
	if err := validateWidget(w); err != nil {
		return w, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return w, shared.ErrNotFound
	}
	w.ID = id
	m.items[id] = w
	return w, nil
}

func (m *memoryWidgets) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.delErr != nil {
		return m.delErr
	}
	if _, ok := m.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func validateWidget(w widget) error {
	if strings.TrimSpace(w.Name) == "" {
		return shared.NewValidationError(map[string]string{"name": "Name is required"})
	}
	return nil
}

type memoryAudit struct {
	mu      sync.Mutex
	entries []shared.AuditLog
}

func (a *memoryAudit) Record(_ context.Context, log shared.AuditLog) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, log)
	return nil
}

func (a *memoryAudit) Recent(_ context.Context, limit int) ([]shared.AuditLog, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if limit > len(a.entries) {
		limit = len(a.entries)
	}
	return append([]shared.AuditLog(nil), a.entries[len(a.entries)-limit:]...), nil
}

func widgetResource() Resource[widget] {
	return Resource[widget]{
		Name:     "widget",
		Plural:   "widgets",
		Module:   rbac.ModuleParties,
		BasePath: "/dashboard/widgets",
		Columns: []ui.Column[widget]{
			{Key: "name", Header: "Name", Sortable: true, Value: func(w widget) any { return w.Name }},
		},
		ID:    func(w widget) int64 { return w.ID },
		Label: func(w widget) string { return w.Name },
		Detail: func(w widget) []DetailRow {
			return []DetailRow{Text("Name", w.Name), {Label: "Status", Value: template.HTML("<b>ok</b>")}}
		},
		Form: func(_ context.Context, w widget) Form {
			return Form{Fields: []Field{
				{Name: "name", Label: "Name", Type: FieldText, Value: w.Name, Required: true},
				{Name: "is_active", Label: "Active", Type: FieldCheckbox, Checked: w.IsActive},
			}}
		},
		Decode: func(v url.Values) (widget, error) {
			return widget{Name: FormString(v, "name"), IsActive: FormBool(v, "is_active")}, nil
		},
	}
}

type harness struct {
	router  http.Handler
	store   *memoryWidgets
	audit   *memoryAudit
	role    rbac.Role
	session string
}

func newHarness(t *testing.T, role rbac.Role, items ...widget) *harness {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	engine, err := view.NewEngine()
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	views := view.NewRenderer(engine, shared.NewCSRFManager("test-secret"), logger)
	sessions := shared.NewSessionManager(client, "test_session", time.Hour, false)

	h := &harness{store: newMemoryWidgets(items...), audit: &memoryAudit{}, role: role}
	mw := rbac.Middleware{Logger: logger}
	res := widgetResource()

	r := chi.NewRouter()
	r.Use(sessions.Middleware(nil))
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			p := rbac.Principal{UserID: 1, Email: "ops@example.com", Role: h.role}
			gate := rbac.NewGate(&p)
			gate.MarkReady()
			ctx := rbac.ContextWithGate(rbac.ContextWithPrincipal(req.Context(), p), gate)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Route("/dashboard/widgets", NewHandler(logger, res, Service[widget](h.store), views, mw, h.audit).MountRoutes)
	r.Route("/api/v1/widgets", NewAPIHandler(logger, res, Service[widget](h.store), mw, h.audit).MountRoutes)
	h.router = r
	return h
}

func (h *harness) do(method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if h.session != "" {
		req.AddCookie(&http.Cookie{Name: "test_session", Value: h.session})
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test_session" && c.Value != "" {
			h.session = c.Value
		}
	}
	return rec
}

func (h *harness) form(target string, values url.Values) *httptest.ResponseRecorder {
	return h.do(http.MethodPost, target, strings.NewReader(values.Encode()), "application/x-www-form-urlencoded")
}

func TestListRendersRows(t *testing.T) {
	h := newHarness(t, rbac.RoleAdmin, widget{ID: 1, Name: "Pallet jack", IsActive: true}, widget{ID: 2, Name: "Forklift"})

	rec := h.do(http.MethodGet, "/dashboard/widgets", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Pallet jack")
	assert.Contains(t, body, "Forklift")
	assert.Contains(t, body, `/dashboard/widgets/1/edit`)
	assert.Contains(t, body, `/dashboard/widgets/1/delete`)
}

func TestListHidesActionsWithoutPermission(t *testing.T) {
	h := newHarness(t, rbac.RoleAccounts, widget{ID: 1, Name: "Pallet jack"})

	rec := h.do(http.MethodGet, "/dashboard/widgets", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `/dashboard/widgets/1/edit`)
	assert.NotContains(t, rec.Body.String(), `/dashboard/widgets/1/delete`)

	assert.Equal(t, http.StatusForbidden, h.do(http.MethodGet, "/dashboard/widgets/1/delete", nil, "").Code)

	h.role = rbac.RoleFinance
	rec = h.do(http.MethodGet, "/dashboard/widgets", nil, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListFailureShowsRetry(t *testing.T) {
	h := newHarness(t, rbac.RoleAdmin)
	h.store.listErr = errors.New("connection refused")

	rec := h.do(http.MethodGet, "/dashboard/widgets?page=2", nil, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to load widgets")
	assert.Contains(t, rec.Body.String(), "Retry")
}

func TestEmptyList(t *testing.T) {
	h := newHarness(t, rbac.RoleAdmin)

	rec := h.do(http.MethodGet, "/dashboard/widgets", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No widgets found")
}

func TestCreateRedirectsAndAudits(t *testing.T) {
	h := newHarness(t, rbac.RoleAdmin)

	rec := h.form("/dashboard/widgets", url.Values{"name": {"Crate"}, "is_active": {"on"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/widgets/1", rec.Header().Get("Location"))
	require.Len(t, h.audit.entries, 1)
	assert.Equal(t, "create", h.audit.entries[0].Action)
	assert.Equal(t, "widget", h.audit.entries[0].Entity)
	assert.Equal(t, "1", h.audit.entries[0].EntityID)
	assert.Equal(t, int64(1), h.audit.entries[0].ActorID)

	rec = h.do(http.MethodGet, "/dashboard/widgets/1", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Widget created successfully")
}

func TestCreateValidationRerendersForm(t *testing.T) {
	h := newHarness(t, rbac.RoleAdmin)

	rec := h.form("/dashboard/widgets", url.Values{"name": {"  "}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Name is required")
	assert.Empty(t, h.audit.entries)
}

func TestCreateNeedsPermission(t *testing.T) {
	h := newHarness(t, rbac.RoleFinance)

	rec := h.do(http.MethodGet, "/dashboard/widgets/create", nil, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdate(t *testing.T) {
	h := newHarness(t, rbac.RoleAdmin, widget{ID: 4, Name: "Crate"})

	rec := h.do(http.MethodGet, "/dashboard/widgets/4/edit", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Edit Widget")

	rec = h.form("/dashboard/widgets/4", url.Values{"name": {"Big crate"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "Big crate", h.store.items[4].Name)
}

func TestShowMissing(t *testing.T) {
	h := newHarness(t, rbac.RoleAdmin)

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/dashboard/widgets/9", nil, "").Code)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodGet, "/dashboard/widgets/abc", nil, "").Code)
}

func TestDeleteConfirmThenDelete(t *testing.T) {
	h := newHarness(t, rbac.RoleAdmin, widget{ID: 3, Name: "Crate"})

	rec := h.do(http.MethodGet, "/dashboard/widgets/3/delete", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Are you sure you want to delete widget")
	assert.Contains(t, h.store.items, int64(3))

	rec = h.form("/dashboard/widgets/3/delete", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/widgets", rec.Header().Get("Location"))
	assert.NotContains(t, h.store.items, int64(3))

	rec = h.do(http.MethodGet, "/dashboard/widgets", nil, "")
	assert.Contains(t, rec.Body.String(), "Widget deleted successfully")
}

func TestDeleteFailureKeepsRow(t *testing.T) {
	h := newHarness(t, rbac.RoleAdmin, widget{ID: 3, Name: "Crate"})
	h.store.delErr = fmt.Errorf("delete widget: %w", shared.ErrInUse)

	rec := h.form("/dashboard/widgets/3/delete", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, h.store.items, int64(3))

	rec = h.do(http.MethodGet, "/dashboard/widgets", nil, "")
	assert.Contains(t, rec.Body.String(), "Failed to delete widget: ")
	assert.Contains(t, rec.Body.String(), "Crate")
}

func TestOptionsListsActiveOnly(t *testing.T) {
	h := newHarness(t, rbac.RoleAdmin, widget{ID: 1, Name: "Crate", IsActive: true}, widget{ID: 2, Name: "Drum"})

	rec := h.do(http.MethodGet, "/dashboard/widgets/options?q=", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var opts []ui.Option
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opts))
	assert.Equal(t, []ui.Option{{ID: "1", Name: "Crate"}}, opts)
}
