package client

import "github.com/vedartha/erp-backend-go/internal/domain/identity"

type Address struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

// Client is the directory record for a billed customer. The id doubles as the
// portal login name; portalPassword is compared by store-side equality, which
// is a modeling fact inherited from the directory, not a recommendation.
type Client struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	ContactPerson  string   `json:"contactPerson,omitempty"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone,omitempty"`
	BillingAddress Address  `json:"billingAddress"`
	GSTIN          string   `json:"gstin,omitempty"`
	BranchIDs      []string `json:"branchIds"`
	Status         string   `json:"status"`
	PortalAccess   bool     `json:"portalAccess"`
	PortalPassword string   `json:"portalPassword,omitempty"`
}

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Identity builds the portal principal for this client.
func (c Client) Identity() identity.Identity {
	return identity.Identity{
		UID:         c.ID,
		Email:       c.Email,
		DisplayName: c.Name,
		Role:        identity.RoleClient,
		Origin:      identity.OriginClient,
		ClientID:    c.ID,
	}
}
