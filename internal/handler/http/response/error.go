package response

import (
	"errors"
	"net/http"

	"github.com/vedartha/erp-backend-go/internal/domain/auth"
	"github.com/vedartha/erp-backend-go/internal/domain/billing"
	"github.com/vedartha/erp-backend-go/internal/domain/branch"
	"github.com/vedartha/erp-backend-go/internal/domain/client"
	"github.com/vedartha/erp-backend-go/internal/domain/employee"
	"github.com/vedartha/erp-backend-go/internal/domain/payroll"
	"github.com/vedartha/erp-backend-go/internal/domain/staffuser"
	"github.com/vedartha/erp-backend-go/internal/domain/ticket"
)

// HandleError maps domain errors to HTTP responses. Auth failures
// deliberately carry no detail about which credential strategy got close.
func HandleError(w http.ResponseWriter, err error) {
	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid credentials")
	case errors.Is(err, auth.ErrAccessDisabled):
		Forbidden(w, "Access disabled")
	case errors.Is(err, auth.ErrProviderError):
		Unauthorized(w, "Invalid credentials")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrRefreshTokenInvalid):
		Unauthorized(w, "Refresh token invalid")

	// Directory record errors
	case errors.Is(err, client.ErrClientNotFound):
		NotFound(w, "Client not found")
	case errors.Is(err, client.ErrClientExists):
		Conflict(w, "Client already exists")
	case errors.Is(err, branch.ErrBranchNotFound):
		NotFound(w, "Branch not found")
	case errors.Is(err, staffuser.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeExists):
		Conflict(w, "Employee code already exists")

	// Transactional record errors
	case errors.Is(err, payroll.ErrRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, ticket.ErrTicketNotFound):
		NotFound(w, "Ticket not found")
	case errors.Is(err, billing.ErrInvoiceNotFound):
		NotFound(w, "Invoice not found")
	case errors.Is(err, billing.ErrPaymentNotFound):
		NotFound(w, "Payment not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
