package rbac

import (
	"context"
	"fmt"
	"strings"
)

// Role is the coarse user classification attached to every account.
type Role string

// Roles known to the permission table.
const (
	RoleAdmin      Role = "admin"
	RoleOperations Role = "operations"
	RoleAccounts   Role = "accounts"
	RoleFinance    Role = "finance"
	RoleManagement Role = "management"
	RoleCustomer   Role = "customer"
)

// Roles lists every role in display order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleOperations, RoleAccounts, RoleFinance, RoleManagement, RoleCustomer}
}

// ParseRole validates a stored or submitted role name.
func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	for _, r := range Roles() {
		if r == role {
			return role, nil
		}
	}
	return "", fmt.Errorf("rbac: unknown role %q", raw)
}

// Action is the granularity at which permissions are granted.
type Action string

// Actions.
const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Permission grants a set of actions on one module.
type Permission struct {
	Module  string
	Actions []Action
}

// Allows reports whether the action is in the permission's action set.
func (p Permission) Allows(action Action) bool {
	for _, a := range p.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// Principal describes the authenticated actor.
type Principal struct {
	UserID int64
	Email  string
	Name   string
	Role   Role
}

type principalKey struct{}

// ContextWithPrincipal stores the principal in context.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal, if one was resolved for the request.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
