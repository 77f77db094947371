package branch

import "context"

type Service interface {
	List(ctx context.Context) ([]Branch, error)
	GetByID(ctx context.Context, id string) (Branch, error)
	Create(ctx context.Context, b Branch) (Branch, error)
	Update(ctx context.Context, b Branch) error
	Delete(ctx context.Context, id string) error
	// SetPortalCredentials sets or rotates the branch manager portal login.
	SetPortalCredentials(ctx context.Context, id, username, password string) error
}
