package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightdesk/freightdesk/internal/shared"
	"github.com/freightdesk/freightdesk/internal/users"
)

func newTestService(t *testing.T) (*Service, *stubAccounts, *stubSessions, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	accounts := newStubAccounts()
	sessions := &stubSessions{}
	svc := NewService(accounts, sessions, NewTokenIssuer("secret", 15*time.Minute, 24*time.Hour), NewTokenStore(client), nil)
	return svc, accounts, sessions, mr
}

func TestLoginIssuesTokens(t *testing.T) {
	svc, _, sessions, mr := newTestService(t)
	res, err := svc.Login(context.Background(), "ops@example.com", "password123", ClientMeta{IP: "10.0.0.1"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.User.ID)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	require.Len(t, sessions.created, 1)
	assert.Equal(t, SessionAPI, sessions.created[0].kind)
	assert.True(t, mr.Exists("auth:refresh:"+sessions.created[0].id))
}

func TestLoginRejectsBadPassword(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	_, err := svc.Login(context.Background(), "ops@example.com", "nope", ClientMeta{})
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestRefreshRotatesAndRejectsReplay(t *testing.T) {
	svc, _, sessions, _ := newTestService(t)
	ctx := context.Background()
	first, err := svc.Login(ctx, "ops@example.com", "password123", ClientMeta{})
	require.NoError(t, err)

	second, err := svc.Refresh(ctx, first.RefreshToken, ClientMeta{})
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Len(t, sessions.deleted, 1)

	_, err = svc.Refresh(ctx, first.RefreshToken, ClientMeta{})
	assert.ErrorIs(t, err, shared.ErrUnauthorized)

	_, err = svc.Refresh(ctx, second.RefreshToken, ClientMeta{})
	assert.NoError(t, err)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	res, err := svc.Login(context.Background(), "ops@example.com", "password123", ClientMeta{})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), res.AccessToken, ClientMeta{})
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestRefreshRejectsSuspendedAccount(t *testing.T) {
	svc, accounts, _, _ := newTestService(t)
	res, err := svc.Login(context.Background(), "ops@example.com", "password123", ClientMeta{})
	require.NoError(t, err)
	accounts.setStatus(1, users.StatusSuspended)

	_, err = svc.Refresh(context.Background(), res.RefreshToken, ClientMeta{})
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestLogoutRevokesBothTokens(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()
	res, err := svc.Login(ctx, "ops@example.com", "password123", ClientMeta{})
	require.NoError(t, err)

	p, err := svc.VerifyAccess(ctx, res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.UserID)

	require.NoError(t, svc.Logout(ctx, res.AccessToken, res.RefreshToken))

	_, err = svc.VerifyAccess(ctx, res.AccessToken)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
	_, err = svc.Refresh(ctx, res.RefreshToken, ClientMeta{})
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestVerifyAccessRereadsAccountStatus(t *testing.T) {
	svc, accounts, _, _ := newTestService(t)
	ctx := context.Background()
	res, err := svc.Login(ctx, "ops@example.com", "password123", ClientMeta{})
	require.NoError(t, err)

	accounts.setStatus(1, users.StatusInactive)
	_, err = svc.VerifyAccess(ctx, res.AccessToken)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}
