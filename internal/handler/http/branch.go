package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vedartha/erp-backend-go/internal/domain/branch"
	"github.com/vedartha/erp-backend-go/internal/handler/http/response"
)

type BranchHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	SetPortalCredentials(w http.ResponseWriter, r *http.Request)
}

type BranchHandlerImpl struct {
	branchService branch.Service
}

func NewBranchHandler(branchService branch.Service) BranchHandler {
	return &BranchHandlerImpl{branchService: branchService}
}

// List implements BranchHandler.
func (h *BranchHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	branches, err := h.branchService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, branches)
}

// Get implements BranchHandler.
func (h *BranchHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.branchService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, b)
}

// Create implements BranchHandler.
func (h *BranchHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var b branch.Branch
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.branchService.Create(r.Context(), b)
	if err != nil {
		slog.Error("Branch create error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Branch created successfully", created)
}

// Update implements BranchHandler.
func (h *BranchHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var b branch.Branch
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	b.ID = chi.URLParam(r, "id")

	if err := h.branchService.Update(r.Context(), b); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Branch updated successfully", b)
}

// Delete implements BranchHandler.
func (h *BranchHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.branchService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Branch deleted successfully", nil)
}

type portalCredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SetPortalCredentials implements BranchHandler.
func (h *BranchHandlerImpl) SetPortalCredentials(w http.ResponseWriter, r *http.Request) {
	var req portalCredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.branchService.SetPortalCredentials(r.Context(), chi.URLParam(r, "id"), req.Username, req.Password); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Portal credentials updated", nil)
}
