package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedartha/erp-backend-go/internal/domain/billing"
	"github.com/vedartha/erp-backend-go/internal/domain/branch"
	"github.com/vedartha/erp-backend-go/internal/domain/client"
	"github.com/vedartha/erp-backend-go/internal/pkg/directory"
	"github.com/vedartha/erp-backend-go/internal/repository/docstore"
)

type billingFixture struct {
	store    *directory.MemoryStore
	branches branch.Repository
	service  billing.Service
}

func newBillingFixture(t *testing.T) *billingFixture {
	t.Helper()
	ctx := context.Background()
	store := directory.NewMemoryStore()
	branches := docstore.NewBranchRepository(store)
	service := NewBillingService(
		store,
		docstore.NewInvoiceRepository(store),
		docstore.NewPaymentRepository(store),
		branches,
		docstore.NewClientRepository(store),
	)

	require.NoError(t, store.Put(ctx, directory.CollectionBranches, "branch-blr", branch.Branch{
		ID:                "branch-blr",
		Name:              "Bengaluru",
		Email:             "blr@vedartha.example",
		InvoicePrefix:     "BLR/26/",
		NextInvoiceNumber: 41,
	}))
	require.NoError(t, store.Put(ctx, directory.CollectionClients, "acme", client.Client{
		ID:    "acme",
		Name:  "Acme Traders",
		Email: "accounts@acme.example",
		GSTIN: "29ABCDE1234F1Z5",
	}))

	return &billingFixture{store: store, branches: branches, service: service}
}

func draftInvoice(t *testing.T, f *billingFixture) billing.Invoice {
	t.Helper()
	inv, err := f.service.CreateInvoice(context.Background(), billing.Invoice{
		BranchID: "branch-blr",
		ClientID: "acme",
		Items: []billing.InvoiceItem{
			{Description: "Bookkeeping", Quantity: 2, Rate: 5000, TaxPercent: 18},
			{Description: "Filing", Quantity: 1, Rate: 2000, DiscountPercent: 10, TaxPercent: 18},
		},
	})
	require.NoError(t, err)
	return inv
}

func TestBillingService_CreateInvoiceComputesTotals(t *testing.T) {
	f := newBillingFixture(t)
	inv := draftInvoice(t, f)

	assert.Equal(t, billing.InvoiceDraft, inv.Status)
	assert.Empty(t, inv.InvoiceNumber)
	assert.Equal(t, "Bengaluru", inv.BranchName)
	assert.Equal(t, "Acme Traders", inv.ClientName)
	assert.Equal(t, "29ABCDE1234F1Z5", inv.ClientGSTIN)

	// 2*5000 + 2000 less 10% = 11800; 18% tax on that.
	assert.InDelta(t, 11800.0, inv.SubTotal, 0.001)
	assert.InDelta(t, 2124.0, inv.TaxAmount, 0.001)
	assert.InDelta(t, 13924.0, inv.GrandTotal, 0.001)
}

func TestBillingService_PostAssignsNumberAndBumpsCounter(t *testing.T) {
	ctx := context.Background()
	f := newBillingFixture(t)
	inv := draftInvoice(t, f)

	posted, err := f.service.Post(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "BLR/26/41", posted.InvoiceNumber)
	assert.Equal(t, billing.InvoicePosted, posted.Status)

	b, err := f.branches.GetByID(ctx, "branch-blr")
	require.NoError(t, err)
	assert.Equal(t, 42, b.NextInvoiceNumber)

	// Posting is draft-only.
	_, err = f.service.Post(ctx, inv.ID)
	assert.Error(t, err)
}

func TestBillingService_RecordPaymentMarksInvoicePaid(t *testing.T) {
	ctx := context.Background()
	f := newBillingFixture(t)
	inv := draftInvoice(t, f)

	_, err := f.service.RecordPayment(ctx, billing.PaymentRequest{InvoiceID: inv.ID, Amount: 13924, Method: "NEFT"})
	assert.Error(t, err, "payments against drafts are rejected")

	posted, err := f.service.Post(ctx, inv.ID)
	require.NoError(t, err)

	p, err := f.service.RecordPayment(ctx, billing.PaymentRequest{InvoiceID: posted.ID, Amount: 13924, Method: "NEFT"})
	require.NoError(t, err)
	assert.Equal(t, posted.InvoiceNumber, p.InvoiceNumber)

	got, err := f.service.GetInvoice(ctx, posted.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.InvoicePaid, got.Status)
}

func TestBillingService_CancelRejectsPaidInvoices(t *testing.T) {
	ctx := context.Background()
	f := newBillingFixture(t)
	inv := draftInvoice(t, f)

	require.NoError(t, f.service.Cancel(ctx, inv.ID))
	got, err := f.service.GetInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceCancelled, got.Status)

	paid := draftInvoice(t, f)
	posted, err := f.service.Post(ctx, paid.ID)
	require.NoError(t, err)
	_, err = f.service.RecordPayment(ctx, billing.PaymentRequest{InvoiceID: posted.ID, Amount: 1})
	require.NoError(t, err)

	assert.Error(t, f.service.Cancel(ctx, posted.ID))
}
