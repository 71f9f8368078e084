package rbac

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightdesk/freightdesk/internal/shared"
)

type stubPrincipals map[int64]Principal

func (s stubPrincipals) PrincipalByID(_ context.Context, id int64) (Principal, error) {
	if p, ok := s[id]; ok {
		return p, nil
	}
	return Principal{}, shared.ErrNotFound
}

type stubTokens map[string]Principal

func (s stubTokens) VerifyAccess(_ context.Context, token string) (Principal, error) {
	if p, ok := s[token]; ok {
		return p, nil
	}
	return Principal{}, errors.New("bad token")
}

func newMiddleware() Middleware {
	return Middleware{
		Principals: stubPrincipals{7: {UserID: 7, Role: RoleOperations}},
		Tokens:     stubTokens{"good": {UserID: 9, Role: RoleCustomer}},
	}
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

func withSession(r *http.Request, userID string) *http.Request {
	sess := &shared.Session{ID: "s1"}
	if userID != "" {
		sess.SetUser(userID)
	}
	return r.WithContext(shared.ContextWithSession(r.Context(), sess))
}

func TestLoadSessionResolvesPrincipal(t *testing.T) {
	m := newMiddleware()
	var gate *Gate
	h := m.LoadSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gate = GateFromContext(r.Context())
		_, ok := PrincipalFromContext(r.Context())
		assert.True(t, ok)
	}))

	h.ServeHTTP(httptest.NewRecorder(), withSession(httptest.NewRequest(http.MethodGet, "/dashboard", nil), "7"))
	require.NotNil(t, gate)
	assert.True(t, gate.Ready())
	assert.True(t, gate.Allow(ModuleJobs, "create"))
}

func TestLoadSessionDropsUnknownUser(t *testing.T) {
	m := newMiddleware()
	req := withSession(httptest.NewRequest(http.MethodGet, "/dashboard", nil), "99")
	h := m.LoadSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := PrincipalFromContext(r.Context())
		assert.False(t, ok)
		assert.True(t, GateFromContext(r.Context()).Ready())
	}))

	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Empty(t, shared.SessionFromContext(req.Context()).User())
}

func TestRequireAuthRedirectsBrowser(t *testing.T) {
	m := newMiddleware()
	rec := httptest.NewRecorder()
	m.LoadSession(m.RequireAuth(okHandler)).ServeHTTP(rec, withSession(httptest.NewRequest(http.MethodGet, "/dashboard", nil), ""))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/login", rec.Header().Get("Location"))
}

func TestRequireOnAPI(t *testing.T) {
	m := newMiddleware()
	h := m.LoadBearer(m.Require(ModuleCarriers, ActionRead)(okHandler))

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"denied", "Bearer good", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/master/carriers", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}

func TestRequireAllows(t *testing.T) {
	m := newMiddleware()
	h := m.LoadBearer(m.Require(ModuleJobs, ActionRead)(okHandler))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/master/jobs", nil)
	req.Header.Set("Authorization", "bearer good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireRoles(t *testing.T) {
	m := newMiddleware()
	h := m.LoadBearer(m.RequireRoles(RoleAdmin)(okHandler))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/health", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLoadBearerStaleTokenContinuesAnonymously(t *testing.T) {
	m := newMiddleware()
	var authed bool
	public := m.LoadBearer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, authed = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec := httptest.NewRecorder()
	public.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, authed)

	protected := m.LoadBearer(m.RequireAuth(okHandler))
	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired token")
}
