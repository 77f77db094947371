package ticket

import "context"

type CreateRequest struct {
	ClientID string `json:"clientId"`
	BranchID string `json:"branchId"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

type RateRequest struct {
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback,omitempty"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (Ticket, error)
	List(ctx context.Context) ([]Ticket, error)
	ListByClientID(ctx context.Context, clientID string) ([]Ticket, error)
	GetByID(ctx context.Context, id string) (Ticket, error)
	// Respond closes the ticket with an admin response.
	Respond(ctx context.Context, id, response string) error
	// Revoke withdraws an open ticket. Only the raising client may revoke.
	Revoke(ctx context.Context, id, clientID string) error
	// Rate records the client's rating on a closed ticket.
	Rate(ctx context.Context, id, clientID string, req RateRequest) error
}
