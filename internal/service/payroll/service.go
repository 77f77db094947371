package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vedartha/erp-backend-go/internal/domain/employee"
	"github.com/vedartha/erp-backend-go/internal/domain/payroll"
	"github.com/vedartha/erp-backend-go/internal/pkg/directory"
)

type PayrollServiceImpl struct {
	store     directory.Store
	records   payroll.Repository
	employees employee.Repository
}

func NewPayrollService(store directory.Store, records payroll.Repository, employees employee.Repository) payroll.Service {
	return &PayrollServiceImpl{store: store, records: records, employees: employees}
}

// GenerateRun implements payroll.Service.
func (s *PayrollServiceImpl) GenerateRun(ctx context.Context, req payroll.RunRequest) ([]payroll.Record, error) {
	if req.Month == "" || req.Year == 0 {
		return nil, fmt.Errorf("payroll run needs a month and year")
	}
	if req.TotalDays == 0 {
		req.TotalDays = 30
	}
	if req.PresentDays == 0 {
		req.PresentDays = req.TotalDays
	}

	all, err := s.employees.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	existing, err := s.records.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payroll records: %w", err)
	}
	covered := make(map[string]bool, len(existing))
	for _, rec := range existing {
		if rec.Month == req.Month && rec.Year == req.Year {
			covered[rec.EmployeeID] = true
		}
	}

	var generated []payroll.Record
	var muts []directory.Mutation
	for _, emp := range all {
		if emp.Status != employee.StatusActive {
			continue
		}
		if req.BranchID != "" && emp.BranchID != req.BranchID {
			continue
		}
		if covered[emp.ID] {
			continue
		}
		rec := buildRecord(emp, req)
		generated = append(generated, rec)
		muts = append(muts, directory.Mutation{
			Op:         directory.OpCreate,
			Collection: directory.CollectionPayroll,
			ID:         rec.ID,
			Doc:        rec,
		})
	}

	for _, batch := range chunk(muts, directory.BatchLimit) {
		if err := s.store.ApplyBatch(ctx, batch); err != nil {
			return nil, fmt.Errorf("commit payroll run batch: %w", err)
		}
	}
	return generated, nil
}

func buildRecord(emp employee.Employee, req payroll.RunRequest) payroll.Record {
	lopDays := req.TotalDays - req.PresentDays

	earnings := payroll.Earnings{
		Basic:            emp.Salary.Basic,
		HRA:              emp.Salary.HRA,
		Conveyance:       emp.Salary.Conveyance,
		SpecialAllowance: emp.Salary.SpecialAllowance,
	}
	gross := earnings.Basic + earnings.HRA + earnings.Conveyance + earnings.SpecialAllowance

	deductions := payroll.Deductions{
		PF:  emp.Salary.PFDeduction,
		PT:  emp.Salary.PTDeduction,
		TDS: emp.Salary.TDSDeduction,
	}
	if lopDays > 0 && req.TotalDays > 0 {
		deductions.LOPAmount = gross / float64(req.TotalDays) * float64(lopDays)
	}
	totalDeductions := deductions.PF + deductions.PT + deductions.TDS + deductions.LOPAmount

	return payroll.Record{
		ID:              uuid.NewString(),
		Month:           req.Month,
		Year:            req.Year,
		EmployeeID:      emp.ID,
		EmployeeName:    emp.Name,
		BranchID:        emp.BranchID,
		Designation:     emp.Designation,
		TotalDays:       req.TotalDays,
		PresentDays:     req.PresentDays,
		LOPDays:         lopDays,
		Earnings:        earnings,
		Deductions:      deductions,
		GrossPay:        gross,
		TotalDeductions: totalDeductions,
		NetPay:          gross - totalDeductions,
		Status:          payroll.StatusDraft,
		GeneratedDate:   time.Now().UTC().Format(time.RFC3339),
	}
}

func chunk(muts []directory.Mutation, limit int) [][]directory.Mutation {
	var batches [][]directory.Mutation
	for len(muts) > limit {
		batches = append(batches, muts[:limit])
		muts = muts[limit:]
	}
	if len(muts) > 0 {
		batches = append(batches, muts)
	}
	return batches
}

// List implements payroll.Service.
func (s *PayrollServiceImpl) List(ctx context.Context) ([]payroll.Record, error) {
	return s.records.List(ctx)
}

// ListByEmployeeID implements payroll.Service.
func (s *PayrollServiceImpl) ListByEmployeeID(ctx context.Context, employeeID string) ([]payroll.Record, error) {
	return s.records.ListByEmployeeID(ctx, employeeID)
}

// GetByID implements payroll.Service.
func (s *PayrollServiceImpl) GetByID(ctx context.Context, id string) (payroll.Record, error) {
	return s.records.GetByID(ctx, id)
}

// Lock implements payroll.Service.
func (s *PayrollServiceImpl) Lock(ctx context.Context, id string) error {
	rec, err := s.records.GetByID(ctx, id)
	if err != nil {
		return err
	}
	rec.Status = payroll.StatusLocked
	return s.records.Put(ctx, rec)
}
