package employee

import "context"

type Service interface {
	List(ctx context.Context) ([]Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	// Create stores the employee and provisions its portal login account in
	// the same batch. A blank id is assigned from the current code namespace.
	Create(ctx context.Context, e Employee) (Employee, error)
	Update(ctx context.Context, e Employee) error
	// Delete removes the employee and every portal account provisioned for it.
	Delete(ctx context.Context, id string) error
	// ResetPortalAccess restores the provisioned login convention: email and
	// password both equal the employee code.
	ResetPortalAccess(ctx context.Context, id string) error
}
