package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightdesk/freightdesk/internal/rbac"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func newAPIRouter(t *testing.T) http.Handler {
	t.Helper()
	svc, _, _, _ := newTestService(t)
	mw := rbac.Middleware{Tokens: svc}
	r := chi.NewRouter()
	r.Use(mw.LoadBearer)
	r.Route("/api/v1/auth", NewAPIHandler(nil, svc, mw).MountRoutes)
	return r
}

func call(t *testing.T, h http.Handler, method, path, token, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func TestAPILoginProfileLogout(t *testing.T) {
	h := newAPIRouter(t)

	code, env := call(t, h, http.MethodPost, "/api/v1/auth/login", "", `{"email":"ops@example.com","password":"password123"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Login successful", env.Message)
	var res struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))

	code, env = call(t, h, http.MethodGet, "/api/v1/auth/profile", res.AccessToken, "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "ops@example.com")
	assert.NotContains(t, string(env.Data), "password")

	code, _ = call(t, h, http.MethodPost, "/api/v1/auth/logout", res.AccessToken, `{"refreshToken":"`+res.RefreshToken+`"}`)
	require.Equal(t, http.StatusOK, code)

	code, env = call(t, h, http.MethodGet, "/api/v1/auth/profile", res.AccessToken, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)
}

func TestAPILoginFailures(t *testing.T) {
	h := newAPIRouter(t)

	code, env := call(t, h, http.MethodPost, "/api/v1/auth/login", "", `{"email":"bad","password":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "Invalid email address", env.Errors["email"])

	code, _ = call(t, h, http.MethodPost, "/api/v1/auth/login", "", `{"email":"ops@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAPIRefreshAcceptsSnakeCase(t *testing.T) {
	h := newAPIRouter(t)
	_, env := call(t, h, http.MethodPost, "/api/v1/auth/login", "", `{"email":"ops@example.com","password":"password123"}`)
	var res struct {
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))

	code, env := call(t, h, http.MethodPost, "/api/v1/auth/refresh", "", `{"refresh_token":"`+res.RefreshToken+`"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Token refreshed successfully", env.Message)

	code, _ = call(t, h, http.MethodPost, "/api/v1/auth/refresh", "", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAPIProfileRequiresToken(t *testing.T) {
	h := newAPIRouter(t)
	code, env := call(t, h, http.MethodGet, "/api/v1/auth/profile", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Authentication required", env.Message)
}

func TestAPILoginIgnoresStaleBearer(t *testing.T) {
	h := newAPIRouter(t)

	code, env := call(t, h, http.MethodPost, "/api/v1/auth/login", "expired.or.revoked", `{"email":"ops@example.com","password":"password123"}`)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	code, env = call(t, h, http.MethodGet, "/api/v1/auth/profile", "expired.or.revoked", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid or expired token", env.Message)
}
