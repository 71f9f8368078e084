package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/freightdesk/freightdesk/internal/rbac"
	"github.com/freightdesk/freightdesk/internal/shared"
)

// Token types carried in the typ claim.
const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

const issuer = "freightdesk"

// Claims are the JWT claims issued for API clients.
type Claims struct {
	Type  string `json:"typ"`
	Role  string `json:"role,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the numeric subject.
func (c Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad subject", shared.ErrUnauthorized)
	}
	return id, nil
}

// TokenPair is the result of a login or refresh.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshID        string
	RefreshExpiresAt time.Time
}

// TokenIssuer signs and parses HS256 access and refresh tokens.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenIssuer returns a TokenIssuer.
func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL, now: time.Now}
}

// Issue creates a fresh access and refresh token for p.
func (t *TokenIssuer) Issue(p rbac.Principal) (TokenPair, error) {
	now := t.now()
	access, accessExp, _, err := t.sign(p, TokenAccess, now, t.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, refreshExp, jti, err := t.sign(p, TokenRefresh, now, t.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshID:        jti,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// Parse verifies signature, expiry and token type.
func (t *TokenIssuer) Parse(raw, wantType string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, fmt.Errorf("%w: token expired", shared.ErrUnauthorized)
		}
		return Claims{}, fmt.Errorf("%w: %v", shared.ErrUnauthorized, err)
	}
	if claims.Type != wantType {
		return Claims{}, fmt.Errorf("%w: expected %s token", shared.ErrUnauthorized, wantType)
	}
	return claims, nil
}

func (t *TokenIssuer) sign(p rbac.Principal, typ string, now time.Time, ttl time.Duration) (string, time.Time, string, error) {
	exp := now.Add(ttl)
	jti := uuid.NewString()
	claims := Claims{
		Type:  typ,
		Role:  string(p.Role),
		Email: p.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(p.UserID, 10),
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, "", fmt.Errorf("sign %s token: %w", typ, err)
	}
	return signed, exp, jti, nil
}
