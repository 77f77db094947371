package employee

type BankDetails struct {
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
	IFSC          string `json:"ifsc"`
}

type SalaryStructure struct {
	Basic            float64 `json:"basic"`
	HRA              float64 `json:"hra"`
	Conveyance       float64 `json:"conveyance"`
	SpecialAllowance float64 `json:"specialAllowance"`
	PFDeduction      float64 `json:"pfDeduction"`
	PTDeduction      float64 `json:"ptDeduction"`
	TDSDeduction     float64 `json:"tdsDeduction"`
}

// Employee is keyed by the employee code. The code lives in one of two numeric
// namespaces; records still carrying a legacy-format code are renumbered once
// by the migrator, which also rewrites every staff user and payroll record
// referencing the old code.
type Employee struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Designation string          `json:"designation"`
	Department  string          `json:"department,omitempty"`
	JoiningDate string          `json:"joiningDate,omitempty"`
	Email       string          `json:"email,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	PAN         string          `json:"pan,omitempty"`
	BranchID    string          `json:"branchId"`
	Status      string          `json:"status"`
	BankDetails BankDetails     `json:"bankDetails"`
	Salary      SalaryStructure `json:"salary"`
}

const (
	StatusActive     = "Active"
	StatusResigned   = "Resigned"
	StatusTerminated = "Terminated"
)

// WithID returns a copy of the record under a new employee code, all other
// fields untouched. Used by the migrator's create-new/delete-old rewrite.
func (e Employee) WithID(id string) Employee {
	e.ID = id
	return e
}
