package billing

import "context"

type InvoiceRepository interface {
	GetByID(ctx context.Context, id string) (Invoice, error)
	List(ctx context.Context) ([]Invoice, error)
	ListByClientID(ctx context.Context, clientID string) ([]Invoice, error)
	Put(ctx context.Context, inv Invoice) error
	Update(ctx context.Context, id string, fields map[string]any) error
}

type PaymentRepository interface {
	GetByID(ctx context.Context, id string) (Payment, error)
	List(ctx context.Context) ([]Payment, error)
	Put(ctx context.Context, p Payment) error
}
