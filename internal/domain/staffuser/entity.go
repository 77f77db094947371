package staffuser

import "github.com/vedartha/erp-backend-go/internal/domain/identity"

// StaffUser is the login directory entry for non-client, non-branch-portal
// principals: Admin, Accountant and Employee accounts. Employee accounts are
// provisioned automatically alongside the employee record and use the employee
// id as both email and password until changed.
type StaffUser struct {
	UID              string        `json:"uid"`
	Email            string        `json:"email"`
	Password         string        `json:"password,omitempty"`
	DisplayName      string        `json:"displayName"`
	Role             identity.Role `json:"role"`
	AllowedBranchIDs []string      `json:"allowedBranchIds"`
	EmployeeID       string        `json:"employeeId,omitempty"`
}

// Identity builds the console principal for this account.
func (u StaffUser) Identity() identity.Identity {
	return identity.Identity{
		UID:              u.UID,
		Email:            u.Email,
		DisplayName:      u.DisplayName,
		Role:             u.Role,
		Origin:           identity.OriginStaff,
		AllowedBranchIDs: u.AllowedBranchIDs,
		EmployeeID:       u.EmployeeID,
	}
}
