package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vedartha/erp-backend-go/internal/domain/identity"
	"github.com/vedartha/erp-backend-go/internal/domain/payroll"
	"github.com/vedartha/erp-backend-go/internal/handler/http/middleware"
	"github.com/vedartha/erp-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	GenerateRun(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Lock(w http.ResponseWriter, r *http.Request)
	MyPayslips(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.Service
}

func NewPayrollHandler(payrollService payroll.Service) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// GenerateRun implements PayrollHandler.
func (h *PayrollHandlerImpl) GenerateRun(w http.ResponseWriter, r *http.Request) {
	var req payroll.RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	records, err := h.payrollService.GenerateRun(r.Context(), req)
	if err != nil {
		slog.Error("Payroll run error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payroll run generated", records)
}

// List implements PayrollHandler.
func (h *PayrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		records, err := h.payrollService.ListByEmployeeID(r.Context(), employeeID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, records)
		return
	}

	records, err := h.payrollService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}

// Get implements PayrollHandler.
func (h *PayrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.payrollService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, rec)
}

// Lock implements PayrollHandler.
func (h *PayrollHandlerImpl) Lock(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.Lock(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll record locked", nil)
}

// MyPayslips implements PayrollHandler. The employee id comes from the
// identity, never from the query, so one employee cannot read another's
// payslips.
func (h *PayrollHandlerImpl) MyPayslips(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok || id.Role != identity.RoleEmployee {
		response.Forbidden(w, "Employee portal access required")
		return
	}

	records, err := h.payrollService.ListByEmployeeID(r.Context(), id.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}
