package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vedartha/erp-backend-go/internal/domain/billing"
	"github.com/vedartha/erp-backend-go/internal/domain/branch"
	"github.com/vedartha/erp-backend-go/internal/domain/client"
	"github.com/vedartha/erp-backend-go/internal/pkg/directory"
)

type BillingServiceImpl struct {
	store    directory.Store
	invoices billing.InvoiceRepository
	payments billing.PaymentRepository
	branches branch.Repository
	clients  client.Repository
}

func NewBillingService(
	store directory.Store,
	invoices billing.InvoiceRepository,
	payments billing.PaymentRepository,
	branches branch.Repository,
	clients client.Repository,
) billing.Service {
	return &BillingServiceImpl{
		store:    store,
		invoices: invoices,
		payments: payments,
		branches: branches,
		clients:  clients,
	}
}

// CreateInvoice implements billing.Service. Drafts carry no invoice number;
// numbering happens at post time.
func (s *BillingServiceImpl) CreateInvoice(ctx context.Context, inv billing.Invoice) (billing.Invoice, error) {
	b, err := s.branches.GetByID(ctx, inv.BranchID)
	if err != nil {
		return billing.Invoice{}, err
	}
	c, err := s.clients.GetByID(ctx, inv.ClientID)
	if err != nil {
		return billing.Invoice{}, err
	}

	inv.ID = uuid.NewString()
	inv.InvoiceNumber = ""
	inv.BranchName = b.Name
	inv.ClientName = c.Name
	inv.ClientGSTIN = c.GSTIN
	inv.Status = billing.InvoiceDraft
	if inv.Date == "" {
		inv.Date = time.Now().UTC().Format(time.RFC3339)
	}
	inv.SubTotal, inv.TaxAmount, inv.GrandTotal = totals(inv.Items)

	if err := s.invoices.Put(ctx, inv); err != nil {
		return billing.Invoice{}, fmt.Errorf("create invoice: %w", err)
	}
	return inv, nil
}

func totals(items []billing.InvoiceItem) (subTotal, taxAmount, grandTotal float64) {
	for _, item := range items {
		line := item.Quantity * item.Rate
		line -= line * item.DiscountPercent / 100
		subTotal += line
		taxAmount += line * item.TaxPercent / 100
	}
	return subTotal, taxAmount, subTotal + taxAmount
}

// Post implements billing.Service.
func (s *BillingServiceImpl) Post(ctx context.Context, invoiceID string) (billing.Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return billing.Invoice{}, err
	}
	if inv.Status != billing.InvoiceDraft {
		return billing.Invoice{}, fmt.Errorf("invoice %s is %s, not a draft", invoiceID, inv.Status)
	}
	b, err := s.branches.GetByID(ctx, inv.BranchID)
	if err != nil {
		return billing.Invoice{}, err
	}

	number := fmt.Sprintf("%s%d", b.InvoicePrefix, b.NextInvoiceNumber)
	muts := []directory.Mutation{
		{
			Op:         directory.OpUpdate,
			Collection: directory.CollectionInvoices,
			ID:         inv.ID,
			Fields: map[string]any{
				"invoiceNumber": number,
				"status":        billing.InvoicePosted,
			},
		},
		{
			Op:         directory.OpUpdate,
			Collection: directory.CollectionBranches,
			ID:         b.ID,
			Fields:     map[string]any{"nextInvoiceNumber": b.NextInvoiceNumber + 1},
		},
	}
	if err := s.store.ApplyBatch(ctx, muts); err != nil {
		return billing.Invoice{}, fmt.Errorf("post invoice %s: %w", invoiceID, err)
	}

	inv.InvoiceNumber = number
	inv.Status = billing.InvoicePosted
	return inv, nil
}

// RecordPayment implements billing.Service. The payment record and the paid
// status land in the same batch.
func (s *BillingServiceImpl) RecordPayment(ctx context.Context, req billing.PaymentRequest) (billing.Payment, error) {
	inv, err := s.invoices.GetByID(ctx, req.InvoiceID)
	if err != nil {
		return billing.Payment{}, err
	}
	if inv.Status != billing.InvoicePosted {
		return billing.Payment{}, fmt.Errorf("invoice %s is %s, not posted", req.InvoiceID, inv.Status)
	}

	p := billing.Payment{
		ID:            uuid.NewString(),
		InvoiceID:     inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		ClientName:    inv.ClientName,
		Amount:        req.Amount,
		Date:          time.Now().UTC().Format(time.RFC3339),
		Method:        req.Method,
		Reference:     req.Reference,
	}
	muts := []directory.Mutation{
		{Op: directory.OpCreate, Collection: directory.CollectionPayments, ID: p.ID, Doc: p},
		{
			Op:         directory.OpUpdate,
			Collection: directory.CollectionInvoices,
			ID:         inv.ID,
			Fields:     map[string]any{"status": billing.InvoicePaid},
		},
	}
	if err := s.store.ApplyBatch(ctx, muts); err != nil {
		return billing.Payment{}, fmt.Errorf("record payment: %w", err)
	}
	return p, nil
}

// ListInvoices implements billing.Service.
func (s *BillingServiceImpl) ListInvoices(ctx context.Context) ([]billing.Invoice, error) {
	return s.invoices.List(ctx)
}

// ListInvoicesByClientID implements billing.Service.
func (s *BillingServiceImpl) ListInvoicesByClientID(ctx context.Context, clientID string) ([]billing.Invoice, error) {
	return s.invoices.ListByClientID(ctx, clientID)
}

// GetInvoice implements billing.Service.
func (s *BillingServiceImpl) GetInvoice(ctx context.Context, id string) (billing.Invoice, error) {
	return s.invoices.GetByID(ctx, id)
}

// ListPayments implements billing.Service.
func (s *BillingServiceImpl) ListPayments(ctx context.Context) ([]billing.Payment, error) {
	return s.payments.List(ctx)
}

// Cancel implements billing.Service.
func (s *BillingServiceImpl) Cancel(ctx context.Context, invoiceID string) error {
	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if inv.Status == billing.InvoicePaid {
		return fmt.Errorf("paid invoice %s cannot be cancelled", invoiceID)
	}
	return s.invoices.Update(ctx, invoiceID, map[string]any{"status": billing.InvoiceCancelled})
}
