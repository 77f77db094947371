package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vedartha/erp-backend-go/internal/domain/client"
	"github.com/vedartha/erp-backend-go/internal/handler/http/middleware"
	"github.com/vedartha/erp-backend-go/internal/handler/http/response"
)

type ClientHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	SetPortalAccess(w http.ResponseWriter, r *http.Request)
	MyProfile(w http.ResponseWriter, r *http.Request)
	UpdateMyProfile(w http.ResponseWriter, r *http.Request)
}

type ClientHandlerImpl struct {
	clientService client.Service
}

func NewClientHandler(clientService client.Service) ClientHandler {
	return &ClientHandlerImpl{clientService: clientService}
}

// List implements ClientHandler.
func (h *ClientHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clientService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, clients)
}

// Get implements ClientHandler.
func (h *ClientHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.clientService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, c)
}

// Create implements ClientHandler.
func (h *ClientHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var c client.Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.clientService.Create(r.Context(), c)
	if err != nil {
		slog.Error("Client create error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Client created successfully", created)
}

// Update implements ClientHandler.
func (h *ClientHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var c client.Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	c.ID = chi.URLParam(r, "id")

	if err := h.clientService.Update(r.Context(), c); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Client updated successfully", c)
}

// Delete implements ClientHandler.
func (h *ClientHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.clientService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Client deleted successfully", nil)
}

type portalAccessRequest struct {
	Enabled  bool   `json:"enabled"`
	Password string `json:"password,omitempty"`
}

// SetPortalAccess implements ClientHandler.
func (h *ClientHandlerImpl) SetPortalAccess(w http.ResponseWriter, r *http.Request) {
	var req portalAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.clientService.SetPortalAccess(r.Context(), chi.URLParam(r, "id"), req.Enabled, req.Password); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Portal access updated", nil)
}

// MyProfile implements ClientHandler. Client portal view of the caller's own
// record; the portal password never leaves the server.
func (h *ClientHandlerImpl) MyProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok || id.ClientID == "" {
		response.Forbidden(w, "Client portal access required")
		return
	}

	c, err := h.clientService.GetByID(r.Context(), id.ClientID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	c.PortalPassword = ""
	response.Success(w, c)
}

type profileUpdateRequest struct {
	ContactPerson string `json:"contactPerson,omitempty"`
	Phone         string `json:"phone,omitempty"`
}

// UpdateMyProfile implements ClientHandler.
func (h *ClientHandlerImpl) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok || id.ClientID == "" {
		response.Forbidden(w, "Client portal access required")
		return
	}

	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.clientService.UpdateProfile(r.Context(), id.ClientID, req.ContactPerson, req.Phone); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Profile updated", nil)
}
