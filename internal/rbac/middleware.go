package rbac

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/freightdesk/freightdesk/internal/platform/httpx"
	"github.com/freightdesk/freightdesk/internal/shared"
)

// PrincipalSource resolves a stored user id into a principal.
type PrincipalSource interface {
	PrincipalByID(ctx context.Context, id int64) (Principal, error)
}

// TokenVerifier resolves a bearer access token into a principal.
type TokenVerifier interface {
	VerifyAccess(ctx context.Context, token string) (Principal, error)
}

// Middleware wires principal resolution and permission enforcement for HTTP handlers.
type Middleware struct {
	Principals PrincipalSource
	Tokens     TokenVerifier
	Logger     *slog.Logger
}

// LoadSession resolves the session user, attaches the principal and a ready gate.
func (m Middleware) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var principal *Principal
		if id, ok := m.sessionUserID(r); ok && m.Principals != nil {
			p, err := m.Principals.PrincipalByID(ctx, id)
			switch {
			case err == nil:
				principal = &p
				ctx = ContextWithPrincipal(ctx, p)
			case errors.Is(err, shared.ErrNotFound), errors.Is(err, shared.ErrForbidden):
				if sess := shared.SessionFromContext(ctx); sess != nil {
					sess.ClearUser()
				}
			default:
				m.logError("rbac load principal", err)
			}
		}
		gate := NewGate(principal)
		gate.MarkReady()
		next.ServeHTTP(w, r.WithContext(ContextWithGate(ctx, gate)))
	})
}

// LoadBearer resolves an Authorization bearer token when present.
func (m Middleware) LoadBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var principal *Principal
		if token, ok := bearerToken(r); ok && m.Tokens != nil {
			p, err := m.Tokens.VerifyAccess(ctx, token)
			if err != nil {
				// Continue anonymously; protected routes answer 401 from unauthenticated.
				m.logDebug("bearer rejected", err)
				ctx = context.WithValue(ctx, staleBearerKey{}, true)
			} else {
				principal = &p
				ctx = ContextWithPrincipal(ctx, p)
			}
		}
		gate := NewGate(principal)
		gate.MarkReady()
		next.ServeHTTP(w, r.WithContext(ContextWithGate(ctx, gate)))
	})
}

// RequireAuth rejects requests without a principal.
func (m Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := PrincipalFromContext(r.Context()); !ok {
			m.unauthenticated(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Require ensures the current principal may perform action on module.
func (m Middleware) Require(module string, action Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				m.unauthenticated(w, r)
				return
			}
			if !HasPermission(p.Role, module, action) {
				m.forbidden(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRoles ensures the current principal holds one of roles.
func (m Middleware) RequireRoles(roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				m.unauthenticated(w, r)
				return
			}
			for _, role := range roles {
				if p.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			m.forbidden(w, r)
		})
	}
}

func (m Middleware) unauthenticated(w http.ResponseWriter, r *http.Request) {
	if httpx.WantsJSON(r) || strings.HasPrefix(r.URL.Path, "/api/") {
		msg := "Authentication required"
		if stale, _ := r.Context().Value(staleBearerKey{}).(bool); stale {
			msg = "Invalid or expired token"
		}
		httpx.Fail(w, http.StatusUnauthorized, msg, nil)
		return
	}
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}

func (m Middleware) forbidden(w http.ResponseWriter, r *http.Request) {
	if httpx.WantsJSON(r) || strings.HasPrefix(r.URL.Path, "/api/") {
		httpx.Fail(w, http.StatusForbidden, "You do not have permission to perform this action", nil)
		return
	}
	http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
}

func (m Middleware) sessionUserID(r *http.Request) (int64, bool) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		return 0, false
	}
	raw := strings.TrimSpace(sess.User())
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		if m.Logger != nil {
			m.Logger.Error("rbac parse user id", slog.String("value", raw))
		}
		return 0, false
	}
	return id, true
}

func (m Middleware) logDebug(msg string, err error) {
	if m.Logger != nil {
		m.Logger.Debug(msg, slog.Any("error", err))
	}
}

func (m Middleware) logError(msg string, err error) {
	if m.Logger != nil {
		m.Logger.Error(msg, slog.Any("error", err))
	}
}

// staleBearerKey marks a request whose bearer token failed verification.
type staleBearerKey struct{}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
