package access

import (
	"github.com/vedartha/erp-backend-go/internal/domain/identity"
)

// Capabilities is the projected access surface for one identity. Projection
// is pure: the same identity always yields the same capabilities, and nothing
// here touches the directory.
type Capabilities struct {
	Route          Route             `json:"route"`
	Modules        []identity.Module `json:"modules"`
	BranchIDs      []string          `json:"branchIds"`
	AllBranches    bool              `json:"allBranches"`
	ModuleSwitcher bool              `json:"moduleSwitcher"`
}

// CanAccess reports whether the capabilities include a console module.
func (c Capabilities) CanAccess(m identity.Module) bool {
	for _, mod := range c.Modules {
		if mod == m {
			return true
		}
	}
	return false
}

// CanSeeBranch reports whether a branch falls inside the projected scope.
func (c Capabilities) CanSeeBranch(branchID string) bool {
	if c.AllBranches {
		return true
	}
	for _, id := range c.BranchIDs {
		if id == branchID {
			return true
		}
	}
	return false
}

// Project derives the capabilities for an identity from its role alone.
func Project(id identity.Identity) Capabilities {
	switch id.Role {
	case identity.RoleAdmin:
		return Capabilities{
			Route:          RouteStaffConsole,
			Modules:        identity.AllModules(),
			AllBranches:    true,
			ModuleSwitcher: true,
		}

	case identity.RoleAccountant:
		caps := Capabilities{
			Route: RouteStaffConsole,
			Modules: without(identity.AllModules(),
				identity.ModuleNotifications,
				identity.ModulePayroll,
				identity.ModuleBranches,
				identity.ModuleSettings,
			),
			BranchIDs:      id.AllowedBranchIDs,
			ModuleSwitcher: true,
		}
		// An accountant with no explicit branch list sees every branch.
		if len(id.AllowedBranchIDs) == 0 {
			caps.AllBranches = true
		}
		return caps

	case identity.RoleBranchManager:
		return Capabilities{
			Route: RouteStaffConsole,
			Modules: without(identity.AllModules(),
				identity.ModuleBranches,
				identity.ModuleSettings,
			),
			BranchIDs:      id.AllowedBranchIDs,
			ModuleSwitcher: true,
		}

	case identity.RoleEmployee:
		return Capabilities{Route: RouteEmployeePortal}

	case identity.RoleClient:
		return Capabilities{Route: RouteClientPortal}

	default:
		// Unknown roles get nothing.
		return Capabilities{Route: RouteNone}
	}
}

func without(modules []identity.Module, excluded ...identity.Module) []identity.Module {
	out := make([]identity.Module, 0, len(modules))
	for _, m := range modules {
		skip := false
		for _, ex := range excluded {
			if m == ex {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, m)
		}
	}
	return out
}
