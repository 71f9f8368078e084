package users

import (
	"time"

	"github.com/freightdesk/freightdesk/internal/rbac"
)

// Account statuses.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

// Statuses lists every account status.
func Statuses() []string {
	return []string{StatusActive, StatusInactive, StatusSuspended}
}

// User is a staff or customer account.
type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name" validate:"required,min=2,max=100"`
	Email        string     `json:"email" validate:"required,email,max=255"`
	Role         rbac.Role  `json:"role" validate:"required,oneof=admin operations accounts finance management customer"`
	Status       string     `json:"status" validate:"required,oneof=active inactive suspended"`
	Phone        string     `json:"phone,omitempty" validate:"max=30"`
	Department   string     `json:"department,omitempty" validate:"max=100"`
	Password     string     `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	PasswordHash string     `json:"-"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Principal projects the account onto the permission model.
func (u User) Principal() rbac.Principal {
	return rbac.Principal{UserID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// Profile is the self-service subset of User.
type Profile struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Phone      string `json:"phone" validate:"max=30"`
	Department string `json:"department" validate:"max=100"`
}

// PasswordChange is submitted from the change password screen and API.
type PasswordChange struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}
