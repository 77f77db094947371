package ticket

// Ticket is a client support message routed to a branch. Branch managers only
// see tickets whose branchId falls inside their allowed branch set.
type Ticket struct {
	ID            string `json:"id"`
	TicketNumber  string `json:"ticketNumber,omitempty"`
	Date          string `json:"date"`
	BranchID      string `json:"branchId"`
	ClientID      string `json:"clientId"`
	ClientName    string `json:"clientName"`
	Subject       string `json:"subject"`
	Message       string `json:"message"`
	Status        string `json:"status"`
	Rating        int    `json:"rating,omitempty"`
	Feedback      string `json:"feedback,omitempty"`
	AdminResponse string `json:"adminResponse,omitempty"`
	ResponseDate  string `json:"responseDate,omitempty"`
	Archived      bool   `json:"archived,omitempty"`
}

const (
	StatusOpen    = "Open"
	StatusClosed  = "Closed"
	StatusRevoked = "Revoked"
)
