package auth

import (
	"context"
	"sync"
	"time"

	"github.com/freightdesk/freightdesk/internal/rbac"
	"github.com/freightdesk/freightdesk/internal/shared"
	"github.com/freightdesk/freightdesk/internal/users"
)

type stubAccounts struct {
	mu    sync.Mutex
	users map[int64]users.User
}

func newStubAccounts() *stubAccounts {
	return &stubAccounts{users: map[int64]users.User{
		1: {ID: 1, Name: "Ops", Email: "ops@example.com", Role: rbac.RoleOperations, Status: users.StatusActive},
		2: {ID: 2, Name: "Gone", Email: "gone@example.com", Role: rbac.RoleOperations, Status: users.StatusSuspended},
	}}
}

func (s *stubAccounts) setStatus(id int64, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.users[id]
	u.Status = status
	s.users[id] = u
}

func (s *stubAccounts) Authenticate(_ context.Context, email, password string) (users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email != email {
			continue
		}
		if password != "password123" {
			return users.User{}, shared.ErrInvalidCredentials
		}
		if u.Status != users.StatusActive {
			return users.User{}, shared.ErrForbidden
		}
		return u, nil
	}
	return users.User{}, shared.ErrInvalidCredentials
}

func (s *stubAccounts) Get(_ context.Context, id int64) (users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return users.User{}, shared.ErrNotFound
	}
	return u, nil
}

func (s *stubAccounts) PrincipalByID(ctx context.Context, id int64) (rbac.Principal, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return rbac.Principal{}, err
	}
	if u.Status != users.StatusActive {
		return rbac.Principal{}, shared.ErrForbidden
	}
	return u.Principal(), nil
}

func (s *stubAccounts) ChangePassword(context.Context, int64, users.PasswordChange) error {
	return nil
}

type sessionRow struct {
	id     string
	userID int64
	kind   string
}

type stubSessions struct {
	mu      sync.Mutex
	created []sessionRow
	deleted []string
}

func (s *stubSessions) CreateSession(_ context.Context, id string, userID int64, kind string, _ time.Time, _, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, sessionRow{id: id, userID: userID, kind: kind})
	return nil
}

func (s *stubSessions) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubSessions) PruneExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}
