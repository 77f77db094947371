package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vedartha/erp-backend-go/internal/domain/ticket"
	"github.com/vedartha/erp-backend-go/internal/handler/http/middleware"
	"github.com/vedartha/erp-backend-go/internal/handler/http/response"
	"github.com/vedartha/erp-backend-go/internal/service/access"
)

type TicketHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Respond(w http.ResponseWriter, r *http.Request)
	MyTickets(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Revoke(w http.ResponseWriter, r *http.Request)
	Rate(w http.ResponseWriter, r *http.Request)
}

type TicketHandlerImpl struct {
	ticketService ticket.Service
}

func NewTicketHandler(ticketService ticket.Service) TicketHandler {
	return &TicketHandlerImpl{ticketService: ticketService}
}

// List implements TicketHandler. Console view, filtered down to the branches
// the caller's capabilities allow.
func (h *TicketHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	tickets, err := h.ticketService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	caps := access.Project(id)
	visible := make([]ticket.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if caps.CanSeeBranch(t.BranchID) {
			visible = append(visible, t)
		}
	}
	response.Success(w, visible)
}

type respondRequest struct {
	Response string `json:"response"`
}

// Respond implements TicketHandler.
func (h *TicketHandlerImpl) Respond(w http.ResponseWriter, r *http.Request) {
	var req respondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Response == "" {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.ticketService.Respond(r.Context(), chi.URLParam(r, "id"), req.Response); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Ticket closed", nil)
}

// MyTickets implements TicketHandler.
func (h *TicketHandlerImpl) MyTickets(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok || id.ClientID == "" {
		response.Forbidden(w, "Client portal access required")
		return
	}

	tickets, err := h.ticketService.ListByClientID(r.Context(), id.ClientID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, tickets)
}

// Create implements TicketHandler. The client id is always the caller's own.
func (h *TicketHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok || id.ClientID == "" {
		response.Forbidden(w, "Client portal access required")
		return
	}

	var req ticket.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ClientID = id.ClientID

	created, err := h.ticketService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Ticket raised", created)
}

// Revoke implements TicketHandler.
func (h *TicketHandlerImpl) Revoke(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok || id.ClientID == "" {
		response.Forbidden(w, "Client portal access required")
		return
	}

	if err := h.ticketService.Revoke(r.Context(), chi.URLParam(r, "id"), id.ClientID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Ticket revoked", nil)
}

// Rate implements TicketHandler.
func (h *TicketHandlerImpl) Rate(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok || id.ClientID == "" {
		response.Forbidden(w, "Client portal access required")
		return
	}

	var req ticket.RateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.ticketService.Rate(r.Context(), chi.URLParam(r, "id"), id.ClientID, req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Ticket rated", nil)
}
