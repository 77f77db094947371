package docstore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/vedartha/erp-backend-go/internal/domain/billing"
	"github.com/vedartha/erp-backend-go/internal/pkg/directory"
)

type invoiceRepositoryImpl struct {
	store directory.Store
}

func NewInvoiceRepository(store directory.Store) billing.InvoiceRepository {
	return &invoiceRepositoryImpl{store: store}
}

func (r *invoiceRepositoryImpl) GetByID(ctx context.Context, id string) (billing.Invoice, error) {
	raw, err := r.store.GetByID(ctx, directory.CollectionInvoices, id)
	if err != nil {
		if err == directory.ErrNotFound {
			return billing.Invoice{}, billing.ErrInvoiceNotFound
		}
		return billing.Invoice{}, fmt.Errorf("get invoice %s: %w", id, err)
	}
	var inv billing.Invoice
	if err := directory.Decode(raw, &inv); err != nil {
		return billing.Invoice{}, fmt.Errorf("decode invoice %s: %w", id, err)
	}
	return inv, nil
}

func (r *invoiceRepositoryImpl) List(ctx context.Context) ([]billing.Invoice, error) {
	raws, err := r.store.QueryEquals(ctx, directory.CollectionInvoices)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return sortInvoices(directory.DecodeAll[billing.Invoice](raws))
}

func (r *invoiceRepositoryImpl) ListByClientID(ctx context.Context, clientID string) ([]billing.Invoice, error) {
	raws, err := r.store.QueryEquals(ctx, directory.CollectionInvoices, directory.Eq("clientId", clientID))
	if err != nil {
		return nil, fmt.Errorf("query invoices by client: %w", err)
	}
	return sortInvoices(directory.DecodeAll[billing.Invoice](raws))
}

func sortInvoices(invoices []billing.Invoice, err error) ([]billing.Invoice, error) {
	if err != nil {
		return nil, err
	}
	sort.Slice(invoices, func(i, j int) bool { return invoices[i].Date > invoices[j].Date })
	return invoices, nil
}

func (r *invoiceRepositoryImpl) Put(ctx context.Context, inv billing.Invoice) error {
	return r.store.Put(ctx, directory.CollectionInvoices, inv.ID, inv)
}

func (r *invoiceRepositoryImpl) Update(ctx context.Context, id string, fields map[string]any) error {
	err := r.store.ApplyBatch(ctx, []directory.Mutation{{
		Op:         directory.OpUpdate,
		Collection: directory.CollectionInvoices,
		ID:         id,
		Fields:     fields,
	}})
	if errors.Is(err, directory.ErrNotFound) {
		return billing.ErrInvoiceNotFound
	}
	return err
}

type paymentRepositoryImpl struct {
	store directory.Store
}

func NewPaymentRepository(store directory.Store) billing.PaymentRepository {
	return &paymentRepositoryImpl{store: store}
}

func (r *paymentRepositoryImpl) GetByID(ctx context.Context, id string) (billing.Payment, error) {
	raw, err := r.store.GetByID(ctx, directory.CollectionPayments, id)
	if err != nil {
		if err == directory.ErrNotFound {
			return billing.Payment{}, billing.ErrPaymentNotFound
		}
		return billing.Payment{}, fmt.Errorf("get payment %s: %w", id, err)
	}
	var p billing.Payment
	if err := directory.Decode(raw, &p); err != nil {
		return billing.Payment{}, fmt.Errorf("decode payment %s: %w", id, err)
	}
	return p, nil
}

func (r *paymentRepositoryImpl) List(ctx context.Context) ([]billing.Payment, error) {
	raws, err := r.store.QueryEquals(ctx, directory.CollectionPayments)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	payments, err := directory.DecodeAll[billing.Payment](raws)
	if err != nil {
		return nil, err
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].Date > payments[j].Date })
	return payments, nil
}

func (r *paymentRepositoryImpl) Put(ctx context.Context, p billing.Payment) error {
	return r.store.Put(ctx, directory.CollectionPayments, p.ID, p)
}
