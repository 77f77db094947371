package employee

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vedartha/erp-backend-go/internal/domain/employee"
	"github.com/vedartha/erp-backend-go/internal/domain/identity"
	"github.com/vedartha/erp-backend-go/internal/domain/staffuser"
	"github.com/vedartha/erp-backend-go/internal/pkg/directory"
	"github.com/vedartha/erp-backend-go/internal/service/migration"
)

type EmployeeServiceImpl struct {
	store     directory.Store
	employees employee.Repository
	staff     staffuser.Repository
	scheme    migration.Scheme
}

func NewEmployeeService(
	store directory.Store,
	employees employee.Repository,
	staff staffuser.Repository,
	scheme migration.Scheme,
) employee.Service {
	return &EmployeeServiceImpl{
		store:     store,
		employees: employees,
		staff:     staff,
		scheme:    scheme,
	}
}

// List implements employee.Service.
func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.Employee, error) {
	return s.employees.List(ctx)
}

// GetByID implements employee.Service.
func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

// Create implements employee.Service. The employee record and its portal
// account commit in one batch so no employee ever exists without a login.
func (s *EmployeeServiceImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	if e.ID == "" {
		id, err := s.nextID(ctx)
		if err != nil {
			return employee.Employee{}, err
		}
		e.ID = id
	}
	if e.Status == "" {
		e.Status = employee.StatusActive
	}

	portalUser := staffuser.StaffUser{
		UID:              uuid.NewString(),
		Email:            e.ID,
		Password:         e.ID,
		DisplayName:      e.Name,
		Role:             identity.RoleEmployee,
		AllowedBranchIDs: []string{e.BranchID},
		EmployeeID:       e.ID,
	}

	muts := []directory.Mutation{
		{Op: directory.OpCreate, Collection: directory.CollectionEmployees, ID: e.ID, Doc: e},
		{Op: directory.OpCreate, Collection: directory.CollectionUsers, ID: portalUser.UID, Doc: portalUser},
	}
	if err := s.store.ApplyBatch(ctx, muts); err != nil {
		return employee.Employee{}, fmt.Errorf("create employee %s: %w", e.ID, err)
	}
	return e, nil
}

// nextID assigns the next unissued code in the current namespace.
func (s *EmployeeServiceImpl) nextID(ctx context.Context) (string, error) {
	all, err := s.employees.List(ctx)
	if err != nil {
		return "", fmt.Errorf("assign employee id: %w", err)
	}
	return s.scheme.NextID(all), nil
}

// Update implements employee.Service.
func (s *EmployeeServiceImpl) Update(ctx context.Context, e employee.Employee) error {
	if _, err := s.employees.GetByID(ctx, e.ID); err != nil {
		return err
	}
	return s.employees.Put(ctx, e)
}

// Delete implements employee.Service.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.employees.GetByID(ctx, id); err != nil {
		return err
	}

	muts := []directory.Mutation{
		{Op: directory.OpDelete, Collection: directory.CollectionEmployees, ID: id},
	}
	users, err := s.staff.ListByEmployeeID(ctx, id)
	if err != nil {
		return fmt.Errorf("load portal accounts for %s: %w", id, err)
	}
	for _, u := range users {
		muts = append(muts, directory.Mutation{
			Op: directory.OpDelete, Collection: directory.CollectionUsers, ID: u.UID,
		})
	}
	if err := s.store.ApplyBatch(ctx, muts); err != nil {
		return fmt.Errorf("delete employee %s: %w", id, err)
	}
	return nil
}

// ResetPortalAccess implements employee.Service.
func (s *EmployeeServiceImpl) ResetPortalAccess(ctx context.Context, id string) error {
	users, err := s.staff.ListByEmployeeID(ctx, id)
	if err != nil {
		return fmt.Errorf("load portal accounts for %s: %w", id, err)
	}
	if len(users) == 0 {
		return staffuser.ErrUserNotFound
	}
	muts := make([]directory.Mutation, 0, len(users))
	for _, u := range users {
		muts = append(muts, directory.Mutation{
			Op:         directory.OpUpdate,
			Collection: directory.CollectionUsers,
			ID:         u.UID,
			Fields:     map[string]any{"email": id, "password": id},
		})
	}
	return s.store.ApplyBatch(ctx, muts)
}
