package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/freightdesk/freightdesk/internal/users"
)

type loginPayload struct {
	User users.User `json:"user"`
	tokenPayload
}

// Login signs in and stores the returned tokens.
func (c *Client) Login(ctx context.Context, email, password string) (users.User, error) {
	data, err := c.do(ctx, http.MethodPost, "auth/login", nil, map[string]string{"email": email, "password": password})
	if err != nil {
		return users.User{}, err
	}
	var out loginPayload
	if err := json.Unmarshal(data, &out); err != nil {
		return users.User{}, fmt.Errorf("decode login: %w", err)
	}
	if err := c.creds.Set(Credentials{Token: out.AccessToken, RefreshToken: out.RefreshToken}); err != nil {
		return users.User{}, err
	}
	return out.User, nil
}

// Logout revokes the tokens server side and clears them locally. Local
// credentials are cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	creds := c.creds.Snapshot()
	var callErr error
	if creds.Token != "" {
		_, callErr = c.do(ctx, http.MethodPost, "auth/logout", nil, map[string]string{"refreshToken": creds.RefreshToken})
	}
	if err := c.creds.Clear(); err != nil {
		return err
	}
	return callErr
}

// Profile returns the signed-in user.
func (c *Client) Profile(ctx context.Context) (users.User, error) {
	data, err := c.do(ctx, http.MethodGet, "auth/profile", nil, nil)
	if err != nil {
		return users.User{}, err
	}
	var u users.User
	if err := json.Unmarshal(data, &u); err != nil {
		return users.User{}, fmt.Errorf("decode profile: %w", err)
	}
	return u, nil
}
