package payroll

type Earnings struct {
	Basic            float64 `json:"basic"`
	HRA              float64 `json:"hra"`
	Conveyance       float64 `json:"conveyance"`
	SpecialAllowance float64 `json:"specialAllowance"`
	Incentive        float64 `json:"incentive"`
	LeaveEncashment  float64 `json:"leaveEncashment"`
}

type Deductions struct {
	PF            float64 `json:"pf"`
	PT            float64 `json:"pt"`
	TDS           float64 `json:"tds"`
	AdvanceSalary float64 `json:"advanceSalary"`
	LOPAmount     float64 `json:"lopAmount"`
}

// Record is one payslip line for one employee and month. employeeId must
// reference an existing employee record; the migrator rewrites it when the
// employee code changes.
type Record struct {
	ID              string     `json:"id"`
	PayslipNo       string     `json:"payslipNo,omitempty"`
	Month           string     `json:"month"`
	Year            int        `json:"year"`
	EmployeeID      string     `json:"employeeId"`
	EmployeeName    string     `json:"employeeName"`
	BranchID        string     `json:"branchId"`
	Designation     string     `json:"designation,omitempty"`
	TotalDays       int        `json:"totalDays"`
	PresentDays     int        `json:"presentDays"`
	LOPDays         int        `json:"lopDays"`
	Earnings        Earnings   `json:"earnings"`
	Deductions      Deductions `json:"deductions"`
	GrossPay        float64    `json:"grossPay"`
	TotalDeductions float64    `json:"totalDeductions"`
	NetPay          float64    `json:"netPay"`
	Status          string     `json:"status"`
	GeneratedDate   string     `json:"generatedDate"`
	Archived        bool       `json:"archived,omitempty"`
}

const (
	StatusDraft  = "Draft"
	StatusLocked = "Locked"
)
