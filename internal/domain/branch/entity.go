package branch

import "github.com/vedartha/erp-backend-go/internal/domain/identity"

type Address struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

type BankDetails struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	IFSCCode      string `json:"ifscCode"`
	BranchName    string `json:"branchName"`
	SwiftCode     string `json:"swiftCode,omitempty"`
}

// Branch is a billing entity. portalUsername/portalPassword open the branch
// manager portal; nextInvoiceNumber is the per-branch invoice counter bumped
// when an invoice is posted.
type Branch struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Address           Address     `json:"address"`
	Contact           string      `json:"contact,omitempty"`
	Email             string      `json:"email"`
	GSTIN             string      `json:"gstin,omitempty"`
	PAN               string      `json:"pan,omitempty"`
	DefaultTaxRate    float64     `json:"defaultTaxRate"`
	InvoicePrefix     string      `json:"invoicePrefix"`
	NextInvoiceNumber int         `json:"nextInvoiceNumber"`
	BankDetails       BankDetails `json:"bankDetails"`
	PortalUsername    string      `json:"portalUsername,omitempty"`
	PortalPassword    string      `json:"portalPassword,omitempty"`
}

// Identity builds the branch manager principal for this branch. The branch
// scope is always exactly the branch itself.
func (b Branch) Identity() identity.Identity {
	return identity.Identity{
		UID:              b.ID,
		Email:            b.Email,
		DisplayName:      b.Name,
		Role:             identity.RoleBranchManager,
		Origin:           identity.OriginBranchUser,
		AllowedBranchIDs: []string{b.ID},
	}
}
