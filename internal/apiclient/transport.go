package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/sync/singleflight"
)

// ErrSessionExpired is returned when the refresh token was rejected and the
// credentials were cleared.
var ErrSessionExpired = errors.New("apiclient: session expired")

// reauthTransport attaches the bearer token and, when the server rejects it,
// refreshes once and replays the request once.
type reauthTransport struct {
	base       http.RoundTripper
	creds      *CredentialStore
	refreshURL string
	onLogout   func()
	logger     *slog.Logger
	group      singleflight.Group
}

func (t *reauthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	used := t.creds.Snapshot().Token
	if isAuthEndpoint(req) {
		return t.send(req, "")
	}
	resp, err := t.send(req, used)
	if err != nil || !rejected(resp.StatusCode) || used == "" {
		return resp, err
	}
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	token, err := t.refresh(req.Context(), used)
	if err != nil {
		if req.Context().Err() != nil {
			return resp, nil
		}
		t.logger.Warn("token refresh failed", slog.Any("error", err))
		t.logout()
		return resp, nil
	}

	drain(resp)
	replay := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		replay.Body = body
	}
	return t.send(replay, token)
}

func (t *reauthTransport) send(req *http.Request, token string) (*http.Response, error) {
	out := req.Clone(req.Context())
	if req.Body != nil && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		out.Body = body
	}
	if token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	}
	return t.base.RoundTrip(out)
}

// refresh exchanges the refresh token for a new pair. Concurrent callers that
// were rejected with the same token share one exchange.
func (t *reauthTransport) refresh(ctx context.Context, used string) (string, error) {
	ch := t.group.DoChan("refresh", func() (any, error) {
		current := t.creds.Snapshot()
		if current.Token != "" && current.Token != used {
			return current.Token, nil
		}
		if current.RefreshToken == "" {
			return "", ErrSessionExpired
		}
		return t.exchange(context.WithoutCancel(ctx), current.RefreshToken)
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (t *reauthTransport) exchange(ctx context.Context, refreshToken string) (string, error) {
	body, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.refreshURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return "", fmt.Errorf("refresh: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("refresh: %w", err)
	}

	env, err := decodeEnvelope(resp.StatusCode, raw)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
			return "", fmt.Errorf("%w: %s", ErrSessionExpired, apiErr.Message)
		}
		return "", err
	}
	var pair tokenPayload
	if err := json.Unmarshal(env.Data, &pair); err != nil || pair.AccessToken == "" {
		return "", fmt.Errorf("%w: refresh returned no access token", ErrSessionExpired)
	}
	if err := t.creds.Set(Credentials{Token: pair.AccessToken, RefreshToken: pair.RefreshToken}); err != nil {
		return "", err
	}
	return pair.AccessToken, nil
}

func (t *reauthTransport) logout() {
	if err := t.creds.Clear(); err != nil {
		t.logger.Warn("clear credentials", slog.Any("error", err))
	}
	if t.onLogout != nil {
		t.onLogout()
	}
}

type tokenPayload struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func rejected(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

func isAuthEndpoint(req *http.Request) bool {
	return strings.HasSuffix(req.URL.Path, "/auth/login") || strings.HasSuffix(req.URL.Path, "/auth/refresh")
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
