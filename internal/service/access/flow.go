package access

import (
	"fmt"
	"sync"

	"github.com/vedartha/erp-backend-go/internal/domain/identity"
)

// Route is the surface an authenticated identity lands on.
type Route string

const (
	RouteNone           Route = ""
	RouteClientPortal   Route = "client_portal"
	RouteEmployeePortal Route = "employee_portal"
	RouteStaffConsole   Route = "staff_console"
)

// State is one node of the authentication flow.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticating  State = "authenticating"
	StateClientPortal    State = "client_portal"
	StateEmployeePortal  State = "employee_portal"
	StateStaffConsole    State = "staff_console"
)

// ErrIllegalTransition is returned when a flow step is attempted from the
// wrong state.
var ErrIllegalTransition = fmt.Errorf("illegal authentication flow transition")

// RouteFor maps an identity to its landing surface. Origin decides before
// role: a client portal login always lands on the client portal.
func RouteFor(id identity.Identity) Route {
	if id.Origin == identity.OriginClient {
		return RouteClientPortal
	}
	if id.Role == identity.RoleEmployee {
		return RouteEmployeePortal
	}
	return RouteStaffConsole
}

func stateForRoute(route Route) State {
	switch route {
	case RouteClientPortal:
		return StateClientPortal
	case RouteEmployeePortal:
		return StateEmployeePortal
	default:
		return StateStaffConsole
	}
}

// Flow tracks the authentication state machine. The only edges are
// unauthenticated to authenticating, authenticating to exactly one surface,
// and any state back to unauthenticated through logout.
type Flow struct {
	mu    sync.Mutex
	state State
}

func NewFlow() *Flow {
	return &Flow{state: StateUnauthenticated}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Begin enters the authenticating state.
func (f *Flow) Begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateUnauthenticated {
		return fmt.Errorf("%w: begin from %s", ErrIllegalTransition, f.state)
	}
	f.state = StateAuthenticating
	return nil
}

// Complete lands the flow on the surface the identity routes to.
func (f *Flow) Complete(id identity.Identity) (State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateAuthenticating {
		return f.state, fmt.Errorf("%w: complete from %s", ErrIllegalTransition, f.state)
	}
	f.state = stateForRoute(RouteFor(id))
	return f.state, nil
}

// Fail aborts an in-progress authentication.
func (f *Flow) Fail() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateAuthenticating {
		return fmt.Errorf("%w: fail from %s", ErrIllegalTransition, f.state)
	}
	f.state = StateUnauthenticated
	return nil
}

// Logout returns to the unauthenticated state from any authenticated surface.
// There is no surface-to-surface edge; switching portals always goes through
// here.
func (f *Flow) Logout() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.state {
	case StateClientPortal, StateEmployeePortal, StateStaffConsole:
		f.state = StateUnauthenticated
		return nil
	}
	return fmt.Errorf("%w: logout from %s", ErrIllegalTransition, f.state)
}
