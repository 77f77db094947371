package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vedartha/erp-backend-go/internal/domain/billing"
	"github.com/vedartha/erp-backend-go/internal/handler/http/middleware"
	"github.com/vedartha/erp-backend-go/internal/handler/http/response"
	"github.com/vedartha/erp-backend-go/internal/service/access"
)

type BillingHandler interface {
	ListInvoices(w http.ResponseWriter, r *http.Request)
	GetInvoice(w http.ResponseWriter, r *http.Request)
	CreateInvoice(w http.ResponseWriter, r *http.Request)
	PostInvoice(w http.ResponseWriter, r *http.Request)
	CancelInvoice(w http.ResponseWriter, r *http.Request)
	ListPayments(w http.ResponseWriter, r *http.Request)
	RecordPayment(w http.ResponseWriter, r *http.Request)
	MyInvoices(w http.ResponseWriter, r *http.Request)
}

type BillingHandlerImpl struct {
	billingService billing.Service
}

func NewBillingHandler(billingService billing.Service) BillingHandler {
	return &BillingHandlerImpl{billingService: billingService}
}

// ListInvoices implements BillingHandler.
func (h *BillingHandlerImpl) ListInvoices(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	invoices, err := h.billingService.ListInvoices(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	caps := access.Project(id)
	visible := make([]billing.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if caps.CanSeeBranch(inv.BranchID) {
			visible = append(visible, inv)
		}
	}
	response.Success(w, visible)
}

// GetInvoice implements BillingHandler.
func (h *BillingHandlerImpl) GetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.billingService.GetInvoice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, inv)
}

// CreateInvoice implements BillingHandler.
func (h *BillingHandlerImpl) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var inv billing.Invoice
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.billingService.CreateInvoice(r.Context(), inv)
	if err != nil {
		slog.Error("Invoice create error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Invoice created", created)
}

// PostInvoice implements BillingHandler.
func (h *BillingHandlerImpl) PostInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.billingService.Post(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Invoice posted", inv)
}

// CancelInvoice implements BillingHandler.
func (h *BillingHandlerImpl) CancelInvoice(w http.ResponseWriter, r *http.Request) {
	if err := h.billingService.Cancel(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Invoice cancelled", nil)
}

// ListPayments implements BillingHandler.
func (h *BillingHandlerImpl) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.billingService.ListPayments(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, payments)
}

// RecordPayment implements BillingHandler.
func (h *BillingHandlerImpl) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req billing.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	payment, err := h.billingService.RecordPayment(r.Context(), req)
	if err != nil {
		slog.Error("Payment record error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payment recorded", payment)
}

// MyInvoices implements BillingHandler. Client portal view of the caller's
// own invoices.
func (h *BillingHandlerImpl) MyInvoices(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok || id.ClientID == "" {
		response.Forbidden(w, "Client portal access required")
		return
	}

	invoices, err := h.billingService.ListInvoicesByClientID(r.Context(), id.ClientID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, invoices)
}
