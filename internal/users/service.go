package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/freightdesk/freightdesk/internal/masterdata/shared"
	"github.com/freightdesk/freightdesk/internal/rbac"
	rootshared "github.com/freightdesk/freightdesk/internal/shared"
)

// Service handles user business logic.
type Service struct {
	repo Repository
	cost int
	now  func() time.Time
}

// NewService builds Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, cost: bcrypt.DefaultCost, now: time.Now}
}

// WithHashCost overrides the bcrypt cost, used by tests.
func (s *Service) WithHashCost(cost int) *Service {
	s.cost = cost
	return s
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]User, int, error) {
	users, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	if id <= 0 {
		return User{}, shared.InvalidID("user", id)
	}
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return User{}, fmt.Errorf("get user: %w", rootshared.TranslatePgError(err))
	}
	return u, nil
}

// FindByEmail looks up an account for sign in.
func (s *Service) FindByEmail(ctx context.Context, email string) (User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return User{}, fmt.Errorf("find user: %w", rootshared.TranslatePgError(err))
	}
	return u, nil
}

func (s *Service) Create(ctx context.Context, u User) (User, error) {
	u = normalize(u)
	if u.Status == "" {
		u.Status = StatusActive
	}
	fields := map[string]string{}
	if u.Password == "" {
		fields["password"] = "Password is required"
	}
	if err := validate(u, fields); err != nil {
		return u, err
	}
	hash, err := s.hash(u.Password)
	if err != nil {
		return u, err
	}
	u.PasswordHash = hash
	u.Password = ""
	created, err := s.repo.Create(ctx, u)
	if err != nil {
		return u, fmt.Errorf("create user: %w", rootshared.TranslatePgError(err))
	}
	return created, nil
}

// Update changes the account. A blank password keeps the current one.
func (s *Service) Update(ctx context.Context, id int64, u User) (User, error) {
	if id <= 0 {
		return u, shared.InvalidID("user", id)
	}
	u = normalize(u)
	if err := validate(u, map[string]string{}); err != nil {
		return u, err
	}
	if p, ok := rbac.PrincipalFromContext(ctx); ok && p.UserID == id {
		if u.Role != p.Role || u.Status != StatusActive {
			return u, rootshared.NewValidationError(map[string]string{"role": "You cannot change your own role or status"})
		}
	}
	u.PasswordHash = ""
	if u.Password != "" {
		hash, err := s.hash(u.Password)
		if err != nil {
			return u, err
		}
		u.PasswordHash = hash
		u.Password = ""
	}
	updated, err := s.repo.Update(ctx, id, u)
	if err != nil {
		return u, fmt.Errorf("update user: %w", rootshared.TranslatePgError(err))
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.InvalidID("user", id)
	}
	if p, ok := rbac.PrincipalFromContext(ctx); ok && p.UserID == id {
		return fmt.Errorf("%w: you cannot delete your own account", rootshared.ErrForbidden)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", rootshared.TranslatePgError(err))
	}
	return nil
}

// PrincipalByID resolves an active account for the permission layer.
func (s *Service) PrincipalByID(ctx context.Context, id int64) (rbac.Principal, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return rbac.Principal{}, err
	}
	if u.Status != StatusActive {
		return rbac.Principal{}, rootshared.ErrForbidden
	}
	return u.Principal(), nil
}

// Authenticate checks credentials and records the sign in.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, rootshared.ErrNotFound) {
			return User{}, rootshared.ErrInvalidCredentials
		}
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, rootshared.ErrInvalidCredentials
	}
	if u.Status != StatusActive {
		return User{}, fmt.Errorf("%w: account is %s", rootshared.ErrForbidden, u.Status)
	}
	now := s.now()
	if err := s.repo.TouchLogin(ctx, u.ID, now); err != nil {
		return User{}, fmt.Errorf("record login: %w", err)
	}
	u.LastLoginAt = &now
	return u, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id int64, p Profile) (User, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Department = strings.TrimSpace(p.Department)
	if err := rootshared.ValidateStruct(p); err != nil {
		return User{}, err
	}
	if err := s.repo.UpdateProfile(ctx, id, p); err != nil {
		return User{}, fmt.Errorf("update profile: %w", rootshared.TranslatePgError(err))
	}
	return s.Get(ctx, id)
}

// ChangePassword verifies the current password before storing the new one.
func (s *Service) ChangePassword(ctx context.Context, id int64, change PasswordChange) error {
	if err := rootshared.ValidateStruct(change); err != nil {
		return err
	}
	u, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(change.CurrentPassword)) != nil {
		return rootshared.NewValidationError(map[string]string{"current_password": "Current password is incorrect"})
	}
	if change.NewPassword == change.CurrentPassword {
		return rootshared.NewValidationError(map[string]string{"new_password": "New password must differ from the current password"})
	}
	hash, err := s.hash(change.NewPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
		return fmt.Errorf("change password: %w", rootshared.TranslatePgError(err))
	}
	return nil
}

func (s *Service) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func normalize(u User) User {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Role = rbac.Role(strings.ToLower(strings.TrimSpace(string(u.Role))))
	u.Status = strings.ToLower(strings.TrimSpace(u.Status))
	u.Phone = strings.TrimSpace(u.Phone)
	u.Department = strings.TrimSpace(u.Department)
	return u
}

func validate(u User, fields map[string]string) error {
	if err := rootshared.ValidateStruct(u); err != nil {
		f := rootshared.FieldErrors(err)
		if f == nil {
			return err
		}
		for k, v := range f {
			fields[k] = v
		}
	}
	if _, ok := fields["role"]; ok {
		fields["role"] = "Invalid role"
	}
	if len(fields) > 0 {
		return rootshared.NewValidationError(fields)
	}
	return nil
}
