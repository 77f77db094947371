package ticket

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vedartha/erp-backend-go/internal/domain/client"
	"github.com/vedartha/erp-backend-go/internal/domain/ticket"
)

type TicketServiceImpl struct {
	tickets ticket.Repository
	clients client.Repository
}

func NewTicketService(tickets ticket.Repository, clients client.Repository) ticket.Service {
	return &TicketServiceImpl{tickets: tickets, clients: clients}
}

// Create implements ticket.Service.
func (s *TicketServiceImpl) Create(ctx context.Context, req ticket.CreateRequest) (ticket.Ticket, error) {
	if req.Subject == "" || req.Message == "" {
		return ticket.Ticket{}, fmt.Errorf("ticket needs a subject and message")
	}
	c, err := s.clients.GetByID(ctx, req.ClientID)
	if err != nil {
		return ticket.Ticket{}, err
	}
	branchID := req.BranchID
	if branchID == "" && len(c.BranchIDs) > 0 {
		branchID = c.BranchIDs[0]
	}

	now := time.Now().UTC()
	t := ticket.Ticket{
		ID:           uuid.NewString(),
		TicketNumber: fmt.Sprintf("TKT-%d", now.UnixMilli()),
		Date:         now.Format(time.RFC3339),
		BranchID:     branchID,
		ClientID:     c.ID,
		ClientName:   c.Name,
		Subject:      req.Subject,
		Message:      req.Message,
		Status:       ticket.StatusOpen,
	}
	if err := s.tickets.Put(ctx, t); err != nil {
		return ticket.Ticket{}, fmt.Errorf("create ticket: %w", err)
	}
	return t, nil
}

// List implements ticket.Service.
func (s *TicketServiceImpl) List(ctx context.Context) ([]ticket.Ticket, error) {
	return s.tickets.List(ctx)
}

// ListByClientID implements ticket.Service.
func (s *TicketServiceImpl) ListByClientID(ctx context.Context, clientID string) ([]ticket.Ticket, error) {
	return s.tickets.ListByClientID(ctx, clientID)
}

// GetByID implements ticket.Service.
func (s *TicketServiceImpl) GetByID(ctx context.Context, id string) (ticket.Ticket, error) {
	return s.tickets.GetByID(ctx, id)
}

// Respond implements ticket.Service.
func (s *TicketServiceImpl) Respond(ctx context.Context, id, response string) error {
	t, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t.Status != ticket.StatusOpen {
		return fmt.Errorf("ticket %s is %s, not open", id, t.Status)
	}
	return s.tickets.Update(ctx, id, map[string]any{
		"adminResponse": response,
		"responseDate":  time.Now().UTC().Format(time.RFC3339),
		"status":        ticket.StatusClosed,
	})
}

// Revoke implements ticket.Service.
func (s *TicketServiceImpl) Revoke(ctx context.Context, id, clientID string) error {
	t, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t.ClientID != clientID {
		return ticket.ErrTicketNotFound
	}
	if t.Status != ticket.StatusOpen {
		return fmt.Errorf("ticket %s is %s, not open", id, t.Status)
	}
	return s.tickets.Update(ctx, id, map[string]any{"status": ticket.StatusRevoked})
}

// Rate implements ticket.Service.
func (s *TicketServiceImpl) Rate(ctx context.Context, id, clientID string, req ticket.RateRequest) error {
	if req.Rating < 1 || req.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	t, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t.ClientID != clientID {
		return ticket.ErrTicketNotFound
	}
	if t.Status != ticket.StatusClosed {
		return fmt.Errorf("only closed tickets can be rated")
	}
	return s.tickets.Update(ctx, id, map[string]any{
		"rating":   req.Rating,
		"feedback": req.Feedback,
	})
}
