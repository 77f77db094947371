package migration

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedartha/erp-backend-go/internal/domain/employee"
	"github.com/vedartha/erp-backend-go/internal/domain/identity"
	"github.com/vedartha/erp-backend-go/internal/domain/payroll"
	"github.com/vedartha/erp-backend-go/internal/domain/staffuser"
	"github.com/vedartha/erp-backend-go/internal/pkg/directory"
	"github.com/vedartha/erp-backend-go/internal/repository/docstore"
)

func newTestMigrator(store directory.Store) *Migrator {
	return NewMigrator(
		store,
		docstore.NewEmployeeRepository(store),
		docstore.NewPayrollRepository(store),
		docstore.NewStaffUserRepository(store),
		testScheme,
	)
}

func seedEmployee(t *testing.T, store directory.Store, id string) employee.Employee {
	t.Helper()
	e := employee.Employee{
		ID:          id,
		Name:        "Asha Verma",
		Designation: "Accounts Executive",
		BranchID:    "branch-1",
		Status:      employee.StatusActive,
		Salary:      employee.SalaryStructure{Basic: 30000, HRA: 12000},
	}
	require.NoError(t, store.Put(context.Background(), directory.CollectionEmployees, e.ID, e))
	return e
}

func TestMigrator_Run_RenumbersAndRewritesReferences(t *testing.T) {
	ctx := context.Background()
	store := directory.NewMemoryStore()
	seeded := seedEmployee(t, store, "8341")

	payrolls := docstore.NewPayrollRepository(store)
	for i := 1; i <= 2; i++ {
		rec := payroll.Record{
			ID:         fmt.Sprintf("pr-%d", i),
			Month:      "July",
			Year:       2026,
			EmployeeID: "8341",
			BranchID:   "branch-1",
			Status:     payroll.StatusDraft,
		}
		require.NoError(t, store.Put(ctx, directory.CollectionPayroll, rec.ID, rec))
	}

	portal := staffuser.StaffUser{
		UID:        "uid-1",
		Email:      "8341",
		Password:   "8341",
		Role:       identity.RoleEmployee,
		EmployeeID: "8341",
	}
	require.NoError(t, store.Put(ctx, directory.CollectionUsers, portal.UID, portal))

	m := newTestMigrator(store)
	report, err := m.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, Report{Scanned: 1, Migrated: 1, Batches: 1}, report)

	employees := docstore.NewEmployeeRepository(store)
	_, err = employees.GetByID(ctx, "8341")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	migrated, err := employees.GetByID(ctx, "911001")
	require.NoError(t, err)
	assert.Equal(t, seeded.WithID("911001"), migrated)

	records, err := payrolls.ListByEmployeeID(ctx, "911001")
	require.NoError(t, err)
	assert.Len(t, records, 2)

	orphaned, err := payrolls.ListByEmployeeID(ctx, "8341")
	require.NoError(t, err)
	assert.Empty(t, orphaned)

	staff := docstore.NewStaffUserRepository(store)
	u, err := staff.GetByUID(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "911001", u.EmployeeID)
	assert.Equal(t, "911001", u.Email)
	assert.Equal(t, "911001", u.Password)
}

func TestMigrator_Run_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := directory.NewMemoryStore()
	seedEmployee(t, store, "8341")

	m := newTestMigrator(store)
	first, err := m.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Migrated)

	// A second pass over the already-migrated directory writes nothing.
	second, err := m.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, Report{Scanned: 1, Migrated: 0, Batches: 0}, second)
}

func TestMigrator_Run_CounterNeverReissuesSuffixes(t *testing.T) {
	ctx := context.Background()
	store := directory.NewMemoryStore()
	seedEmployee(t, store, "911001")
	seedEmployee(t, store, "911002")
	seedEmployee(t, store, "42")

	m := newTestMigrator(store)
	report, err := m.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Migrated)

	employees := docstore.NewEmployeeRepository(store)
	migrated, err := employees.GetByID(ctx, "911003")
	require.NoError(t, err)
	assert.Equal(t, "911003", migrated.ID)
}

func TestMigrator_Run_LeavesNonNumericIdsAlone(t *testing.T) {
	ctx := context.Background()
	store := directory.NewMemoryStore()
	seedEmployee(t, store, "EMP-7")

	m := newTestMigrator(store)
	report, err := m.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, Report{Scanned: 1}, report)

	employees := docstore.NewEmployeeRepository(store)
	_, err = employees.GetByID(ctx, "EMP-7")
	assert.NoError(t, err)
}

// claimLostStore simulates a concurrent pass winning the create-on-new-id
// claim: the first batch fails with ErrAlreadyExists, later ones go through.
type claimLostStore struct {
	directory.Store
	lost bool
}

func (s *claimLostStore) ApplyBatch(ctx context.Context, muts []directory.Mutation) error {
	if !s.lost {
		s.lost = true
		return fmt.Errorf("employees/911001: %w", directory.ErrAlreadyExists)
	}
	return s.Store.ApplyBatch(ctx, muts)
}

func TestMigrator_Run_BacksOffWhenClaimIsLost(t *testing.T) {
	ctx := context.Background()
	inner := directory.NewMemoryStore()
	seedEmployee(t, inner, "8341")
	store := &claimLostStore{Store: inner}

	m := NewMigrator(
		store,
		docstore.NewEmployeeRepository(inner),
		docstore.NewPayrollRepository(inner),
		docstore.NewStaffUserRepository(inner),
		testScheme,
	)

	report, err := m.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, Report{Scanned: 1, Migrated: 0, Batches: 0}, report)

	// The legacy record is untouched and picked up by the next trigger.
	employees := docstore.NewEmployeeRepository(inner)
	_, err = employees.GetByID(ctx, "8341")
	require.NoError(t, err)

	retried, err := m.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, retried.Migrated)
}
