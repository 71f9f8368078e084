package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessions(t *testing.T) *SessionManager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionManager(client, "fd_session", time.Hour, false)
}

func TestSessionRoundTrip(t *testing.T) {
	sm := newTestSessions(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	require.NoError(t, err)
	sess.SetUser("42")
	sess.AddFlash(FlashMessage{Kind: FlashSuccess, Message: "Welcome back"})

	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec, sess))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[0])
	loaded, err := sm.Load(ctx, next)
	require.NoError(t, err)
	assert.Equal(t, "42", loaded.User())
	flash := loaded.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, "Welcome back", flash.Message)
	assert.Nil(t, loaded.PopFlash())
}

func TestSessionUnknownCookieIsNotAdopted(t *testing.T) {
	sm := newTestSessions(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "fd_session", Value: "attacker-chosen"})
	sess, err := sm.Load(context.Background(), req)
	require.NoError(t, err)
	assert.NotEqual(t, "attacker-chosen", sess.ID)
}

func TestSessionRotatesOnLogin(t *testing.T) {
	sm := newTestSessions(t)
	ctx := context.Background()

	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.NoError(t, sm.Commit(ctx, httptest.NewRecorder(), sess))
	anonymousID := sess.ID

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "fd_session", Value: anonymousID})
	loaded, err := sm.Load(ctx, req)
	require.NoError(t, err)
	loaded.SetUser("7")
	require.NoError(t, sm.Commit(ctx, httptest.NewRecorder(), loaded))
	assert.NotEqual(t, anonymousID, loaded.ID)

	stale := httptest.NewRequest(http.MethodGet, "/", nil)
	stale.AddCookie(&http.Cookie{Name: "fd_session", Value: anonymousID})
	again, err := sm.Load(ctx, stale)
	require.NoError(t, err)
	assert.Empty(t, again.User())
}

func TestCSRFVerify(t *testing.T) {
	m := NewCSRFManager("secret")
	sess := newSession()
	token := m.EnsureToken(sess)
	assert.NotEmpty(t, token)
	assert.Equal(t, token, m.EnsureToken(sess))
	assert.NoError(t, m.VerifyToken(sess, token))
	assert.ErrorIs(t, m.VerifyToken(sess, "nope"), ErrCSRFTokenMismatch)
	assert.ErrorIs(t, m.VerifyToken(sess, ""), ErrCSRFTokenMissing)
}

func TestMiddlewareCommitsBeforeRedirect(t *testing.T) {
	sm := newTestSessions(t)
	h := sm.Middleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		SessionFromContext(r.Context()).AddFlash(FlashMessage{Kind: FlashInfo, Message: "saved"})
		http.Redirect(w, r, "/next", http.StatusSeeOther)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	next := httptest.NewRequest(http.MethodGet, "/next", nil)
	next.AddCookie(cookies[0])
	sess, err := sm.Load(context.Background(), next)
	require.NoError(t, err)
	flash := sess.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, "saved", flash.Message)
}
