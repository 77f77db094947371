package middleware

import (
	"fmt"
	"net/http"

	"github.com/vedartha/erp-backend-go/internal/domain/identity"
	"github.com/vedartha/erp-backend-go/internal/handler/http/response"
	"github.com/vedartha/erp-backend-go/internal/service/access"
)

// RequireModule gates a console endpoint on the projected capability set.
func RequireModule(module identity.Module) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}

			caps := access.Project(id)
			if caps.Route != access.RouteStaffConsole {
				response.Forbidden(w, "Staff console access required")
				return
			}
			if !caps.CanAccess(module) {
				response.Forbidden(w, fmt.Sprintf("Module '%s' not available for role '%s'", module, id.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRoute gates an endpoint on the surface the identity lands on, so a
// client portal token can never reach the staff console and vice versa.
func RequireRoute(route access.Route) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}

			if access.RouteFor(id) != route {
				response.Forbidden(w, "Access denied for this surface")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin gates the operations only Admin may run.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "Authentication required")
			return
		}

		if id.Role != identity.RoleAdmin {
			response.Forbidden(w, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
