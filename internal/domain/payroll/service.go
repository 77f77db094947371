package payroll

import "context"

// RunRequest asks for one payroll run. An empty BranchID covers every branch.
type RunRequest struct {
	Month       string `json:"month"`
	Year        int    `json:"year"`
	BranchID    string `json:"branchId,omitempty"`
	TotalDays   int    `json:"totalDays"`
	PresentDays int    `json:"presentDays"`
}

type Service interface {
	// GenerateRun creates one draft record per active employee in scope,
	// committed in store-limit-sized batches. Employees that already have a
	// record for the month are skipped.
	GenerateRun(ctx context.Context, req RunRequest) ([]Record, error)
	List(ctx context.Context) ([]Record, error)
	ListByEmployeeID(ctx context.Context, employeeID string) ([]Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	// Lock freezes a draft record against further edits.
	Lock(ctx context.Context, id string) error
}
