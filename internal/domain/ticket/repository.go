package ticket

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Ticket, error)
	List(ctx context.Context) ([]Ticket, error)
	ListByClientID(ctx context.Context, clientID string) ([]Ticket, error)
	Put(ctx context.Context, t Ticket) error
	Update(ctx context.Context, id string, fields map[string]any) error
}
