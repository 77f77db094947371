package branch

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Branch, error)
	GetByPortalLogin(ctx context.Context, username, password string) (Branch, error)
	GetByEmail(ctx context.Context, email string) (Branch, error)
	List(ctx context.Context) ([]Branch, error)
	Put(ctx context.Context, b Branch) error
	Delete(ctx context.Context, id string) error
}
