package rbac

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateDeniesUntilReady(t *testing.T) {
	g := NewGate(&Principal{UserID: 1, Role: RoleAdmin})
	assert.False(t, g.Ready())
	assert.False(t, g.Allow(ModuleCarriers, "create"))
	assert.False(t, g.Admin())
	assert.Nil(t, g.User())

	g.MarkReady()
	g.MarkReady()
	assert.True(t, g.Ready())
	assert.True(t, g.Allow(ModuleCarriers, "create"))
	assert.True(t, g.Admin())
}

func TestGateAnonymous(t *testing.T) {
	g := NewGate(nil)
	g.MarkReady()
	assert.False(t, g.CanAccess(ModuleDashboard))
	assert.False(t, g.AllowRoles("admin", "customer"))
	assert.Nil(t, g.User())
}

func TestGateUserIsCopy(t *testing.T) {
	g := NewGate(&Principal{UserID: 4, Role: RoleCustomer})
	g.MarkReady()
	u := g.User()
	require.NotNil(t, u)
	u.Role = RoleAdmin
	assert.False(t, g.Admin())
	assert.True(t, g.AllowRoles("customer"))
}

func TestGateFromContextDefaultsToDenying(t *testing.T) {
	g := GateFromContext(context.Background())
	require.NotNil(t, g)
	assert.False(t, g.Ready())

	ready := NewGate(&Principal{Role: RoleOperations})
	ready.MarkReady()
	assert.Same(t, ready, GateFromContext(ContextWithGate(context.Background(), ready)))
}

func TestNilGateIsSafe(t *testing.T) {
	var g *Gate
	g.MarkReady()
	assert.False(t, g.Ready())
	assert.False(t, g.Allow(ModuleJobs, "read"))
}
