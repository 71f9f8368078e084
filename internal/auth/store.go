package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/freightdesk/freightdesk/internal/shared"
)

// TokenStore tracks live refresh tokens and revoked access tokens in Redis.
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore returns a TokenStore.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// SaveRefresh records a refresh token id until it expires.
func (s *TokenStore) SaveRefresh(ctx context.Context, jti string, userID int64, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, refreshKey(jti), strconv.FormatInt(userID, 10), ttl).Err(); err != nil {
		return fmt.Errorf("auth: save refresh: %w", err)
	}
	return nil
}

// ConsumeRefresh deletes the refresh token id and returns its owner. A token
// can be consumed once, so a replayed refresh token is rejected.
func (s *TokenStore) ConsumeRefresh(ctx context.Context, jti string) (int64, error) {
	raw, err := s.client.GetDel(ctx, refreshKey(jti)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("%w: refresh token revoked", shared.ErrUnauthorized)
	}
	if err != nil {
		return 0, fmt.Errorf("auth: consume refresh: %w", err)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("auth: stored refresh owner: %w", err)
	}
	return id, nil
}

// RevokeRefresh drops a refresh token id without returning it.
func (s *TokenStore) RevokeRefresh(ctx context.Context, jti string) error {
	return s.client.Del(ctx, refreshKey(jti)).Err()
}

// RevokeAccess denies an access token id for the rest of its lifetime.
func (s *TokenStore) RevokeAccess(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revokedKey(jti), "1", ttl).Err()
}

// IsRevoked reports whether an access token id was revoked.
func (s *TokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("auth: check revoked: %w", err)
	}
	return n > 0, nil
}

func refreshKey(jti string) string { return "auth:refresh:" + jti }
func revokedKey(jti string) string { return "auth:revoked:" + jti }
