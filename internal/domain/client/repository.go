package client

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Client, error)
	GetByPortalLogin(ctx context.Context, id, portalPassword string) (Client, error)
	GetByEmail(ctx context.Context, email string) (Client, error)
	List(ctx context.Context) ([]Client, error)
	Put(ctx context.Context, c Client) error
	Delete(ctx context.Context, id string) error
}
