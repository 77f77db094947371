package identity

import "fmt"

type Role string

const (
	RoleAdmin         Role = "Admin"
	RoleAccountant    Role = "Accountant"
	RoleBranchManager Role = "Branch Manager"
	RoleClient        Role = "Client"
	RoleEmployee      Role = "Employee"
)

// Origin records which credential scheme produced an identity. Exactly one
// origin applies to any identity; routing and revalidation switch on it
// exhaustively.
type Origin string

const (
	OriginClient        Origin = "client"
	OriginBranchUser    Origin = "branch_user"
	OriginStaff         Origin = "staff"
	OriginAdminFallback Origin = "admin_fallback"
)

// Identity is the authenticated principal shared by the session layer, the
// role projector and the HTTP surface. It is reconstructed from the canonical
// directory record on every session restore; cached copies are never trusted.
type Identity struct {
	UID              string   `json:"uid"`
	Email            string   `json:"email"`
	DisplayName      string   `json:"display_name"`
	Role             Role     `json:"role"`
	Origin           Origin   `json:"origin"`
	AllowedBranchIDs []string `json:"allowed_branch_ids"`
	ClientID         string   `json:"client_id,omitempty"`
	EmployeeID       string   `json:"employee_id,omitempty"`
}

// Validate enforces the structural invariants: clientId is present iff the
// identity came from the client portal, and employeeId is present whenever the
// role is Employee.
func (i Identity) Validate() error {
	switch i.Origin {
	case OriginClient:
		if i.ClientID == "" {
			return fmt.Errorf("client identity %s has no client id", i.UID)
		}
	case OriginBranchUser, OriginStaff, OriginAdminFallback:
		if i.ClientID != "" {
			return fmt.Errorf("%s identity %s carries a client id", i.Origin, i.UID)
		}
	default:
		return fmt.Errorf("identity %s has unknown origin %q", i.UID, i.Origin)
	}
	if i.Role == RoleEmployee && i.EmployeeID == "" {
		return fmt.Errorf("employee identity %s has no employee id", i.UID)
	}
	return nil
}

// BranchScoped reports whether the identity is limited to an explicit branch
// set. An empty set means "all branches" for Admin and, by inherited
// convention, for Accountant.
func (i Identity) BranchScoped() bool {
	return len(i.AllowedBranchIDs) > 0
}
