package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/freightdesk/freightdesk/internal/rbac"
	"github.com/freightdesk/freightdesk/internal/shared"
	"github.com/freightdesk/freightdesk/internal/users"
)

// Accounts is the user lookup auth depends on.
type Accounts interface {
	Authenticate(ctx context.Context, email, password string) (users.User, error)
	Get(ctx context.Context, id int64) (users.User, error)
	PrincipalByID(ctx context.Context, id int64) (rbac.Principal, error)
	ChangePassword(ctx context.Context, id int64, change users.PasswordChange) error
}

// Service wraps authentication business rules for the web session and API tokens.
type Service struct {
	accounts Accounts
	sessions SessionRepository
	tokens   *TokenIssuer
	store    *TokenStore
	logger   *slog.Logger
}

// NewService constructs a new Service.
func NewService(accounts Accounts, sessions SessionRepository, tokens *TokenIssuer, store *TokenStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{accounts: accounts, sessions: sessions, tokens: tokens, store: store, logger: logger}
}

// LoginResult is returned to API clients after login or refresh.
type LoginResult struct {
	User         users.User `json:"user"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	ExpiresAt    time.Time  `json:"expiresAt"`
}

// ClientMeta identifies where a sign-in came from.
type ClientMeta struct {
	IP        string
	UserAgent string
}

// Authenticate validates email/password credentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (users.User, error) {
	return s.accounts.Authenticate(ctx, email, password)
}

// Login authenticates and issues an access and refresh token.
func (s *Service) Login(ctx context.Context, email, password string, meta ClientMeta) (LoginResult, error) {
	u, err := s.accounts.Authenticate(ctx, email, password)
	if err != nil {
		return LoginResult{}, err
	}
	return s.issue(ctx, u, meta)
}

// Refresh exchanges a refresh token for a new pair. The old refresh token
// stops working.
func (s *Service) Refresh(ctx context.Context, refreshToken string, meta ClientMeta) (LoginResult, error) {
	claims, err := s.tokens.Parse(refreshToken, TokenRefresh)
	if err != nil {
		return LoginResult{}, err
	}
	owner, err := s.store.ConsumeRefresh(ctx, claims.ID)
	if err != nil {
		return LoginResult{}, err
	}
	id, err := claims.UserID()
	if err != nil {
		return LoginResult{}, err
	}
	if owner != id {
		return LoginResult{}, fmt.Errorf("%w: refresh token owner mismatch", shared.ErrUnauthorized)
	}
	s.removeSession(ctx, claims.ID)
	u, err := s.accounts.Get(ctx, id)
	if err != nil {
		return LoginResult{}, unauthorizedIfMissing(err)
	}
	if u.Status != users.StatusActive {
		return LoginResult{}, fmt.Errorf("%w: account is %s", shared.ErrUnauthorized, u.Status)
	}
	return s.issue(ctx, u, meta)
}

// Logout revokes the access token and, when given, the refresh token.
func (s *Service) Logout(ctx context.Context, accessToken, refreshToken string) error {
	claims, err := s.tokens.Parse(accessToken, TokenAccess)
	if err != nil {
		return err
	}
	if err := s.store.RevokeAccess(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("revoke access: %w", err)
	}
	if refreshToken == "" {
		return nil
	}
	rc, err := s.tokens.Parse(refreshToken, TokenRefresh)
	if err != nil {
		return nil
	}
	if err := s.store.RevokeRefresh(ctx, rc.ID); err != nil {
		return fmt.Errorf("revoke refresh: %w", err)
	}
	s.removeSession(ctx, rc.ID)
	return nil
}

// VerifyAccess resolves a bearer token into the current principal. Role and
// status are re-read so a suspended account loses access immediately.
func (s *Service) VerifyAccess(ctx context.Context, token string) (rbac.Principal, error) {
	claims, err := s.tokens.Parse(token, TokenAccess)
	if err != nil {
		return rbac.Principal{}, err
	}
	revoked, err := s.store.IsRevoked(ctx, claims.ID)
	if err != nil {
		return rbac.Principal{}, err
	}
	if revoked {
		return rbac.Principal{}, fmt.Errorf("%w: token revoked", shared.ErrUnauthorized)
	}
	id, err := claims.UserID()
	if err != nil {
		return rbac.Principal{}, err
	}
	p, err := s.accounts.PrincipalByID(ctx, id)
	if err != nil {
		return rbac.Principal{}, unauthorizedIfMissing(err)
	}
	return p, nil
}

// Profile returns the account behind a principal.
func (s *Service) Profile(ctx context.Context, id int64) (users.User, error) {
	return s.accounts.Get(ctx, id)
}

// ChangePassword delegates to the account service.
func (s *Service) ChangePassword(ctx context.Context, id int64, change users.PasswordChange) error {
	return s.accounts.ChangePassword(ctx, id, change)
}

// RegisterSession persists web session metadata.
func (s *Service) RegisterSession(ctx context.Context, id string, userID int64, expiresAt time.Time, meta ClientMeta) error {
	return s.sessions.CreateSession(ctx, id, userID, SessionWeb, expiresAt, meta.IP, meta.UserAgent)
}

// RemoveSession deletes a session record.
func (s *Service) RemoveSession(ctx context.Context, id string) error {
	return s.sessions.DeleteSession(ctx, id)
}

func (s *Service) issue(ctx context.Context, u users.User, meta ClientMeta) (LoginResult, error) {
	pair, err := s.tokens.Issue(u.Principal())
	if err != nil {
		return LoginResult{}, err
	}
	if err := s.store.SaveRefresh(ctx, pair.RefreshID, u.ID, pair.RefreshExpiresAt); err != nil {
		return LoginResult{}, err
	}
	if err := s.sessions.CreateSession(ctx, pair.RefreshID, u.ID, SessionAPI, pair.RefreshExpiresAt, meta.IP, meta.UserAgent); err != nil {
		s.logger.Warn("register api session", slog.Any("error", err))
	}
	return LoginResult{User: u, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken, ExpiresAt: pair.AccessExpiresAt}, nil
}

func (s *Service) removeSession(ctx context.Context, id string) {
	if err := s.sessions.DeleteSession(ctx, id); err != nil {
		s.logger.Warn("remove api session", slog.Any("error", err))
	}
}

func unauthorizedIfMissing(err error) error {
	if errors.Is(err, shared.ErrNotFound) || errors.Is(err, shared.ErrForbidden) {
		return fmt.Errorf("%w: %v", shared.ErrUnauthorized, err)
	}
	return err
}
