package billing

import "context"

type PaymentRequest struct {
	InvoiceID string  `json:"invoiceId"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Reference string  `json:"reference,omitempty"`
}

type Service interface {
	CreateInvoice(ctx context.Context, inv Invoice) (Invoice, error)
	// Post assigns the branch's next invoice number and bumps the counter in
	// the same batch, so two concurrent posts can never share a number once
	// committed.
	Post(ctx context.Context, invoiceID string) (Invoice, error)
	RecordPayment(ctx context.Context, req PaymentRequest) (Payment, error)
	ListInvoices(ctx context.Context) ([]Invoice, error)
	ListInvoicesByClientID(ctx context.Context, clientID string) ([]Invoice, error)
	GetInvoice(ctx context.Context, id string) (Invoice, error)
	ListPayments(ctx context.Context) ([]Payment, error)
	Cancel(ctx context.Context, invoiceID string) error
}
