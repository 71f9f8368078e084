package rbac

import (
	"context"
	"sync/atomic"
)

// Gate answers role and permission questions for templates. Until MarkReady is
// called every check reports false, so guarded markup renders its fallback
// while the principal is still being resolved.
type Gate struct {
	principal *Principal
	ready     atomic.Bool
}

// NewGate builds a gate for the given principal. A nil principal is an anonymous visitor.
func NewGate(p *Principal) *Gate {
	return &Gate{principal: p}
}

// MarkReady transitions the gate into the ready state. Calling it again has no effect.
func (g *Gate) MarkReady() {
	if g == nil {
		return
	}
	g.ready.Store(true)
}

// Ready reports whether identity resolution has finished.
func (g *Gate) Ready() bool {
	return g != nil && g.ready.Load()
}

// User returns the principal once the gate is ready.
func (g *Gate) User() *Principal {
	if !g.Ready() || g.principal == nil {
		return nil
	}
	p := *g.principal
	return &p
}

// Allow reports whether the current user may perform action on module.
func (g *Gate) Allow(module, action string) bool {
	p := g.User()
	if p == nil {
		return false
	}
	return HasPermission(p.Role, module, Action(action))
}

// CanAccess is Allow with the read action.
func (g *Gate) CanAccess(module string) bool {
	return g.Allow(module, string(ActionRead))
}

// AllowRoles reports whether the current user holds one of roles.
func (g *Gate) AllowRoles(roles ...string) bool {
	p := g.User()
	if p == nil {
		return false
	}
	for _, r := range roles {
		if Role(r) == p.Role {
			return true
		}
	}
	return false
}

// Admin reports whether the current user is an administrator.
func (g *Gate) Admin() bool {
	return g.AllowRoles(string(RoleAdmin))
}

type gateKey struct{}

// ContextWithGate stores the gate in context.
func ContextWithGate(ctx context.Context, g *Gate) context.Context {
	return context.WithValue(ctx, gateKey{}, g)
}

// GateFromContext returns the request gate. Requests that never passed through
// the principal loader get a gate that is not ready and denies everything.
func GateFromContext(ctx context.Context) *Gate {
	if g, ok := ctx.Value(gateKey{}).(*Gate); ok && g != nil {
		return g
	}
	return NewGate(nil)
}
