package payroll

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Record, error)
	List(ctx context.Context) ([]Record, error)
	ListByEmployeeID(ctx context.Context, employeeID string) ([]Record, error)
	Put(ctx context.Context, r Record) error
}
