package employee

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Put(ctx context.Context, e Employee) error
	Delete(ctx context.Context, id string) error
}
