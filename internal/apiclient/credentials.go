package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Credentials are the tokens of the signed-in user.
type Credentials struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// CredentialStore owns the current credentials. The only transitions are
// Set and Clear; readers get snapshots. When path is set the credentials
// survive restarts.
type CredentialStore struct {
	mu    sync.RWMutex
	path  string
	creds Credentials
}

// DefaultCredentialPath returns the credentials file under the user config dir.
func DefaultCredentialPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "freightdesk", "credentials.json"), nil
}

// NewCredentialStore restores credentials from path. An empty path keeps
// them in memory only.
func NewCredentialStore(path string) (*CredentialStore, error) {
	s := &CredentialStore{path: path}
	if path == "" {
		return s, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	if err := json.Unmarshal(raw, &s.creds); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return s, nil
}

// Snapshot returns a copy of the current credentials.
func (s *CredentialStore) Snapshot() Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds
}

// Authenticated reports whether a token is held.
func (s *CredentialStore) Authenticated() bool {
	return s.Snapshot().Token != ""
}

// Set replaces the credentials and persists them.
func (s *CredentialStore) Set(c Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = c
	if s.path == "" {
		return nil
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	return os.WriteFile(s.path, raw, 0o600)
}

// Clear forgets the credentials and removes the persisted copy.
func (s *CredentialStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = Credentials{}
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
