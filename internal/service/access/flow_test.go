package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedartha/erp-backend-go/internal/domain/identity"
)

func TestRouteFor_OriginDecidesBeforeRole(t *testing.T) {
	// A client portal login lands on the client portal no matter the role.
	assert.Equal(t, RouteClientPortal, RouteFor(identity.Identity{
		Origin: identity.OriginClient, Role: identity.RoleClient, ClientID: "acme",
	}))
	assert.Equal(t, RouteEmployeePortal, RouteFor(identity.Identity{
		Origin: identity.OriginStaff, Role: identity.RoleEmployee, EmployeeID: "911001",
	}))
	assert.Equal(t, RouteStaffConsole, RouteFor(identity.Identity{
		Origin: identity.OriginStaff, Role: identity.RoleAdmin,
	}))
	assert.Equal(t, RouteStaffConsole, RouteFor(identity.Identity{
		Origin: identity.OriginBranchUser, Role: identity.RoleBranchManager,
	}))
}

func TestFlow_HappyPath(t *testing.T) {
	f := NewFlow()
	assert.Equal(t, StateUnauthenticated, f.State())

	require.NoError(t, f.Begin())
	assert.Equal(t, StateAuthenticating, f.State())

	state, err := f.Complete(identity.Identity{Origin: identity.OriginClient, Role: identity.RoleClient, ClientID: "acme"})
	require.NoError(t, err)
	assert.Equal(t, StateClientPortal, state)

	require.NoError(t, f.Logout())
	assert.Equal(t, StateUnauthenticated, f.State())
}

func TestFlow_FailedAttemptReturnsToUnauthenticated(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.Begin())
	require.NoError(t, f.Fail())
	assert.Equal(t, StateUnauthenticated, f.State())

	// A fresh attempt is allowed after a failure.
	assert.NoError(t, f.Begin())
}

func TestFlow_IllegalTransitions(t *testing.T) {
	f := NewFlow()

	_, err := f.Complete(identity.Identity{Origin: identity.OriginStaff, Role: identity.RoleAdmin})
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.ErrorIs(t, f.Fail(), ErrIllegalTransition)
	assert.ErrorIs(t, f.Logout(), ErrIllegalTransition)

	require.NoError(t, f.Begin())
	assert.ErrorIs(t, f.Begin(), ErrIllegalTransition)
}

func TestFlow_NoSurfaceToSurfaceEdge(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.Begin())
	_, err := f.Complete(identity.Identity{Origin: identity.OriginStaff, Role: identity.RoleAdmin})
	require.NoError(t, err)

	// Switching surfaces requires going through logout first.
	assert.ErrorIs(t, f.Begin(), ErrIllegalTransition)
	_, err = f.Complete(identity.Identity{Origin: identity.OriginClient, Role: identity.RoleClient, ClientID: "acme"})
	assert.ErrorIs(t, err, ErrIllegalTransition)

	require.NoError(t, f.Logout())
	require.NoError(t, f.Begin())
}
