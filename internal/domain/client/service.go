package client

import "context"

type Service interface {
	List(ctx context.Context) ([]Client, error)
	GetByID(ctx context.Context, id string) (Client, error)
	Create(ctx context.Context, c Client) (Client, error)
	Update(ctx context.Context, c Client) error
	Delete(ctx context.Context, id string) error
	// SetPortalAccess flips portal access and, when enabling, sets the portal
	// password. Disabling leaves the password in place but locks the portal.
	SetPortalAccess(ctx context.Context, id string, enabled bool, password string) error
	// UpdateProfile is the client portal's own limited mutation surface.
	UpdateProfile(ctx context.Context, id, contactPerson, phone string) error
}
