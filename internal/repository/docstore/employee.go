package docstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/vedartha/erp-backend-go/internal/domain/employee"
	"github.com/vedartha/erp-backend-go/internal/pkg/directory"
)

type employeeRepositoryImpl struct {
	store directory.Store
}

func NewEmployeeRepository(store directory.Store) employee.Repository {
	return &employeeRepositoryImpl{store: store}
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	raw, err := r.store.GetByID(ctx, directory.CollectionEmployees, id)
	if err != nil {
		if err == directory.ErrNotFound {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("get employee %s: %w", id, err)
	}
	var e employee.Employee
	if err := directory.Decode(raw, &e); err != nil {
		return employee.Employee{}, fmt.Errorf("decode employee %s: %w", id, err)
	}
	return e, nil
}

// List returns employees sorted by id. The migrator depends on this order
// being stable so counter assignment is deterministic across runs.
func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	raws, err := r.store.QueryEquals(ctx, directory.CollectionEmployees)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	employees, err := directory.DecodeAll[employee.Employee](raws)
	if err != nil {
		return nil, err
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].ID < employees[j].ID })
	return employees, nil
}

func (r *employeeRepositoryImpl) Put(ctx context.Context, e employee.Employee) error {
	return r.store.Put(ctx, directory.CollectionEmployees, e.ID, e)
}

func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, directory.CollectionEmployees, id)
}
