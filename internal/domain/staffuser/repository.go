package staffuser

import "context"

type Repository interface {
	GetByUID(ctx context.Context, uid string) (StaffUser, error)
	GetByLogin(ctx context.Context, loginID, password string) (StaffUser, error)
	GetByEmail(ctx context.Context, email string) (StaffUser, error)
	ListByEmployeeID(ctx context.Context, employeeID string) ([]StaffUser, error)
	Put(ctx context.Context, u StaffUser) error
	Delete(ctx context.Context, uid string) error
}
