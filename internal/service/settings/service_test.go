package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedartha/erp-backend-go/internal/domain/billing"
	"github.com/vedartha/erp-backend-go/internal/domain/payroll"
	"github.com/vedartha/erp-backend-go/internal/pkg/directory"
	"github.com/vedartha/erp-backend-go/internal/repository/docstore"
)

func seedTransactions(t *testing.T, store directory.Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, directory.CollectionInvoices, "inv-1", billing.Invoice{ID: "inv-1", Status: billing.InvoicePaid}))
	require.NoError(t, store.Put(ctx, directory.CollectionPayments, "pay-1", billing.Payment{ID: "pay-1", Amount: 100}))
	require.NoError(t, store.Put(ctx, directory.CollectionPayroll, "pr-1", payroll.Record{ID: "pr-1", Month: "July", Year: 2026, EmployeeID: "911001"}))
}

func TestSettingsService_CloseFinancialYear(t *testing.T) {
	ctx := context.Background()
	store := directory.NewMemoryStore()
	seedTransactions(t, store)
	service := NewSettingsService(store)

	report, err := service.CloseFinancialYear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Archived)

	invoices := docstore.NewInvoiceRepository(store)
	inv, err := invoices.GetByID(ctx, "inv-1")
	require.NoError(t, err)
	assert.True(t, inv.Archived)

	// Re-running archives nothing further.
	report, err = service.CloseFinancialYear(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.Archived)
}

func TestSettingsService_RestoreArchived(t *testing.T) {
	ctx := context.Background()
	store := directory.NewMemoryStore()
	seedTransactions(t, store)
	service := NewSettingsService(store)

	_, err := service.CloseFinancialYear(ctx)
	require.NoError(t, err)

	report, err := service.RestoreArchived(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Restored)

	invoices := docstore.NewInvoiceRepository(store)
	inv, err := invoices.GetByID(ctx, "inv-1")
	require.NoError(t, err)
	assert.False(t, inv.Archived)
}

func TestSettingsService_PurgeArchivedLeavesLiveRecords(t *testing.T) {
	ctx := context.Background()
	store := directory.NewMemoryStore()
	seedTransactions(t, store)
	service := NewSettingsService(store)

	_, err := service.CloseFinancialYear(ctx)
	require.NoError(t, err)

	// A record created after the close stays live through the purge.
	require.NoError(t, store.Put(ctx, directory.CollectionInvoices, "inv-2", billing.Invoice{ID: "inv-2", Status: billing.InvoiceDraft}))

	report, err := service.PurgeArchived(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Purged)

	invoices := docstore.NewInvoiceRepository(store)
	_, err = invoices.GetByID(ctx, "inv-1")
	assert.Error(t, err)
	_, err = invoices.GetByID(ctx, "inv-2")
	assert.NoError(t, err)
}
