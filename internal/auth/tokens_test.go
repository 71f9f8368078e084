package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightdesk/freightdesk/internal/rbac"
	"github.com/freightdesk/freightdesk/internal/shared"
)

var principal = rbac.Principal{UserID: 7, Email: "ops@example.com", Name: "Ops", Role: rbac.RoleOperations}

func TestIssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("secret", 15*time.Minute, 24*time.Hour)
	pair, err := issuer.Issue(principal)
	require.NoError(t, err)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.NotEmpty(t, pair.RefreshID)
	assert.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))

	claims, err := issuer.Parse(pair.AccessToken, TokenAccess)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, string(rbac.RoleOperations), claims.Role)

	refresh, err := issuer.Parse(pair.RefreshToken, TokenRefresh)
	require.NoError(t, err)
	assert.Equal(t, pair.RefreshID, refresh.ID)
}

func TestParseRejectsWrongType(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute, time.Hour)
	pair, err := issuer.Issue(principal)
	require.NoError(t, err)

	_, err = issuer.Parse(pair.RefreshToken, TokenAccess)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestParseRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute, time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }
	pair, err := issuer.Issue(principal)
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(pair.AccessToken, TokenAccess)
	require.ErrorIs(t, err, shared.ErrUnauthorized)
	assert.Contains(t, err.Error(), "expired")
}

func TestParseRejectsForeignSignature(t *testing.T) {
	pair, err := NewTokenIssuer("other", time.Minute, time.Hour).Issue(principal)
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret", time.Minute, time.Hour).Parse(pair.AccessToken, TokenAccess)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestParseRejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{Type: TokenAccess, RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "freightdesk",
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret", time.Minute, time.Hour).Parse(raw, TokenAccess)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}
