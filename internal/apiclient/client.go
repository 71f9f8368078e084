// Package apiclient is a typed client for the freightdesk REST API. It keeps
// the caller's credentials, refreshes them when the server rejects a token,
// caches reads per resource and reports mutation outcomes through a Notifier.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is used when no API URL is configured.
const DefaultBaseURL = "http://localhost:8080/api/v1"

// DefaultCacheTTL bounds how long cached reads are served.
const DefaultCacheTTL = time.Minute

// Config wires a Client.
type Config struct {
	BaseURL     string
	Credentials *CredentialStore
	Notifier    Notifier
	// OnLogout runs after a failed refresh cleared the credentials.
	OnLogout  func()
	Transport http.RoundTripper
	Timeout   time.Duration
	CacheTTL  time.Duration
	Logger    *slog.Logger
}

// Client talks to one API server.
type Client struct {
	base     *url.URL
	http     *http.Client
	creds    *CredentialStore
	cache    *TagCache
	notifier Notifier
	logger   *slog.Logger
}

// New builds a Client from cfg.
func New(cfg Config) (*Client, error) {
	raw := cfg.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(raw, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if cfg.Credentials == nil {
		cfg.Credentials, _ = NewCredentialStore("")
	}
	if cfg.Notifier == nil {
		cfg.Notifier = discardNotifier{}
	}
	if cfg.Transport == nil {
		cfg.Transport = http.DefaultTransport
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	transport := &reauthTransport{
		base:       cfg.Transport,
		creds:      cfg.Credentials,
		refreshURL: base.ResolveReference(&url.URL{Path: "auth/refresh"}).String(),
		onLogout:   cfg.OnLogout,
		logger:     cfg.Logger,
	}
	return &Client{
		base:     base,
		http:     &http.Client{Transport: transport, Timeout: cfg.Timeout},
		creds:    cfg.Credentials,
		cache:    NewTagCache(cfg.CacheTTL),
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
	}, nil
}

// Credentials exposes the store the client reads tokens from.
func (c *Client) Credentials() *CredentialStore {
	return c.creds
}

// do sends a request and returns the envelope's data.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	target := c.base.ResolveReference(&url.URL{Path: strings.TrimLeft(path, "/")})
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	env, err := decodeEnvelope(resp.StatusCode, raw)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// mutate runs a write and reports it through the notifier.
func (c *Client) mutate(ctx context.Context, n Notify, method, path string, body any) (json.RawMessage, error) {
	data, err := c.do(ctx, method, path, nil, body)
	if err != nil {
		c.notifier.Failure(n.Failure, err)
		return nil, err
	}
	c.notifier.Success(n.Success)
	return data, nil
}
