package employee

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedartha/erp-backend-go/internal/domain/employee"
	"github.com/vedartha/erp-backend-go/internal/domain/identity"
	"github.com/vedartha/erp-backend-go/internal/domain/staffuser"
	"github.com/vedartha/erp-backend-go/internal/pkg/directory"
	"github.com/vedartha/erp-backend-go/internal/repository/docstore"
	"github.com/vedartha/erp-backend-go/internal/service/migration"
)

type employeeFixture struct {
	store   *directory.MemoryStore
	staff   staffuser.Repository
	service employee.Service
}

func newEmployeeFixture(t *testing.T) *employeeFixture {
	t.Helper()
	store := directory.NewMemoryStore()
	staff := docstore.NewStaffUserRepository(store)
	service := NewEmployeeService(
		store,
		docstore.NewEmployeeRepository(store),
		staff,
		migration.Scheme{CurrentPrefix: "91", BaseOffset: 1000},
	)
	return &employeeFixture{store: store, staff: staff, service: service}
}

func TestEmployeeService_CreateAssignsIDAndProvisionsPortalAccount(t *testing.T) {
	ctx := context.Background()
	f := newEmployeeFixture(t)

	created, err := f.service.Create(ctx, employee.Employee{
		Name:     "Asha Verma",
		BranchID: "branch-blr",
	})
	require.NoError(t, err)
	assert.Equal(t, "911001", created.ID)
	assert.Equal(t, employee.StatusActive, created.Status)

	// The portal account commits in the same batch, logging in with the
	// employee code as both email and password.
	users, err := f.staff.ListByEmployeeID(ctx, "911001")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "911001", users[0].Email)
	assert.Equal(t, "911001", users[0].Password)
	assert.Equal(t, identity.RoleEmployee, users[0].Role)
	assert.Equal(t, []string{"branch-blr"}, users[0].AllowedBranchIDs)
}

func TestEmployeeService_CreateAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	f := newEmployeeFixture(t)

	first, err := f.service.Create(ctx, employee.Employee{Name: "A", BranchID: "b"})
	require.NoError(t, err)
	second, err := f.service.Create(ctx, employee.Employee{Name: "B", BranchID: "b"})
	require.NoError(t, err)

	assert.Equal(t, "911001", first.ID)
	assert.Equal(t, "911002", second.ID)
}

func TestEmployeeService_DeleteCascadesToPortalAccounts(t *testing.T) {
	ctx := context.Background()
	f := newEmployeeFixture(t)

	created, err := f.service.Create(ctx, employee.Employee{Name: "A", BranchID: "b"})
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, created.ID))

	_, err = f.service.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	users, err := f.staff.ListByEmployeeID(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestEmployeeService_ResetPortalAccess(t *testing.T) {
	ctx := context.Background()
	f := newEmployeeFixture(t)

	created, err := f.service.Create(ctx, employee.Employee{Name: "A", BranchID: "b"})
	require.NoError(t, err)

	users, err := f.staff.ListByEmployeeID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, users, 1)

	changed := users[0]
	changed.Email = "asha@vedartha.example"
	changed.Password = "custom"
	require.NoError(t, f.staff.Put(ctx, changed))

	require.NoError(t, f.service.ResetPortalAccess(ctx, created.ID))

	users, err = f.staff.ListByEmployeeID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, created.ID, users[0].Email)
	assert.Equal(t, created.ID, users[0].Password)
}

func TestEmployeeService_ResetPortalAccessWithoutAccount(t *testing.T) {
	ctx := context.Background()
	f := newEmployeeFixture(t)

	err := f.service.ResetPortalAccess(ctx, "911999")
	assert.ErrorIs(t, err, staffuser.ErrUserNotFound)
}
