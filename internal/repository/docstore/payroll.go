package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/vedartha/erp-backend-go/internal/domain/payroll"
	"github.com/vedartha/erp-backend-go/internal/pkg/directory"
)

type payrollRepositoryImpl struct {
	store directory.Store
}

func NewPayrollRepository(store directory.Store) payroll.Repository {
	return &payrollRepositoryImpl{store: store}
}

func (r *payrollRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Record, error) {
	raw, err := r.store.GetByID(ctx, directory.CollectionPayroll, id)
	if err != nil {
		if err == directory.ErrNotFound {
			return payroll.Record{}, payroll.ErrRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("get payroll record %s: %w", id, err)
	}
	var rec payroll.Record
	if err := directory.Decode(raw, &rec); err != nil {
		return payroll.Record{}, fmt.Errorf("decode payroll record %s: %w", id, err)
	}
	return rec, nil
}

func (r *payrollRepositoryImpl) List(ctx context.Context) ([]payroll.Record, error) {
	raws, err := r.store.QueryEquals(ctx, directory.CollectionPayroll)
	if err != nil {
		return nil, fmt.Errorf("list payroll records: %w", err)
	}
	return decodeSorted(raws)
}

func (r *payrollRepositoryImpl) ListByEmployeeID(ctx context.Context, employeeID string) ([]payroll.Record, error) {
	raws, err := r.store.QueryEquals(ctx, directory.CollectionPayroll, directory.Eq("employeeId", employeeID))
	if err != nil {
		return nil, fmt.Errorf("query payroll records by employee: %w", err)
	}
	return decodeSorted(raws)
}

func decodeSorted(raws []json.RawMessage) ([]payroll.Record, error) {
	records, err := directory.DecodeAll[payroll.Record](raws)
	if err != nil {
		return nil, err
	}
	// Newest run first, matching the history screens.
	sort.Slice(records, func(i, j int) bool { return records[i].GeneratedDate > records[j].GeneratedDate })
	return records, nil
}

func (r *payrollRepositoryImpl) Put(ctx context.Context, rec payroll.Record) error {
	return r.store.Put(ctx, directory.CollectionPayroll, rec.ID, rec)
}
