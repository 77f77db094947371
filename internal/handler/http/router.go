package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/vedartha/erp-backend-go/internal/domain/identity"
	"github.com/vedartha/erp-backend-go/internal/handler/http/middleware"
	"github.com/vedartha/erp-backend-go/internal/pkg/jwt"
	"github.com/vedartha/erp-backend-go/internal/service/access"
)

type Handlers struct {
	Auth     AuthHandler
	Client   ClientHandler
	Branch   BranchHandler
	Employee EmployeeHandler
	Payroll  PayrollHandler
	Ticket   TicketHandler
	Billing  BillingHandler
	Settings SettingsHandler
	Events   EventsHandler
}

func NewRouter(jwtService jwt.Service, h Handlers, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "vedartha-erp"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Post("/session/restore", h.Auth.RestoreSession)
			r.Route("/oauth", func(r chi.Router) {
				r.Get("/google", h.Auth.LoginWithGoogle)
				r.Get("/callback/google", h.Auth.OAuthCallbackGoogle)
			})
		})

		// SSE stream authenticates with its own short-lived token.
		r.Get("/events", h.Events.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService))

			r.Get("/me", h.Auth.Me)
			r.Get("/events/token", h.Events.Token)

			// Staff console, gated per module.
			r.Route("/clients", func(r chi.Router) {
				r.Use(middleware.RequireModule(identity.ModuleClients))
				r.Get("/", h.Client.List)
				r.Post("/", h.Client.Create)
				r.Get("/{id}", h.Client.Get)
				r.Put("/{id}", h.Client.Update)
				r.Delete("/{id}", h.Client.Delete)
				r.Put("/{id}/portal-access", h.Client.SetPortalAccess)
			})

			r.Route("/branches", func(r chi.Router) {
				r.Use(middleware.RequireModule(identity.ModuleBranches))
				r.Get("/", h.Branch.List)
				r.Post("/", h.Branch.Create)
				r.Get("/{id}", h.Branch.Get)
				r.Put("/{id}", h.Branch.Update)
				r.Delete("/{id}", h.Branch.Delete)
				r.Put("/{id}/portal-credentials", h.Branch.SetPortalCredentials)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.RequireModule(identity.ModulePayroll))
				r.Get("/", h.Employee.List)
				r.Post("/", h.Employee.Create)
				r.Get("/{id}", h.Employee.Get)
				r.Put("/{id}", h.Employee.Update)
				r.Delete("/{id}", h.Employee.Delete)
				r.Post("/{id}/reset-portal-access", h.Employee.ResetPortalAccess)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.RequireModule(identity.ModulePayroll))
				r.Get("/", h.Payroll.List)
				r.Post("/runs", h.Payroll.GenerateRun)
				r.Get("/{id}", h.Payroll.Get)
				r.Post("/{id}/lock", h.Payroll.Lock)
			})

			r.Route("/tickets", func(r chi.Router) {
				r.Use(middleware.RequireModule(identity.ModuleNotifications))
				r.Get("/", h.Ticket.List)
				r.Post("/{id}/respond", h.Ticket.Respond)
			})

			r.Route("/invoices", func(r chi.Router) {
				r.Use(middleware.RequireModule(identity.ModuleInvoices))
				r.Get("/", h.Billing.ListInvoices)
				r.Post("/", h.Billing.CreateInvoice)
				r.Get("/{id}", h.Billing.GetInvoice)
				r.Post("/{id}/post", h.Billing.PostInvoice)
				r.Post("/{id}/cancel", h.Billing.CancelInvoice)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Use(middleware.RequireModule(identity.ModulePayments))
				r.Get("/", h.Billing.ListPayments)
				r.Post("/", h.Billing.RecordPayment)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/close-financial-year", h.Settings.CloseFinancialYear)
				r.Post("/restore-archived", h.Settings.RestoreArchived)
				r.Post("/purge-archived", h.Settings.PurgeArchived)
				r.Post("/migrate-employee-ids", h.Settings.RunMigration)
			})

			// Client portal.
			r.Route("/portal/client", func(r chi.Router) {
				r.Use(middleware.RequireRoute(access.RouteClientPortal))
				r.Get("/profile", h.Client.MyProfile)
				r.Put("/profile", h.Client.UpdateMyProfile)
				r.Get("/invoices", h.Billing.MyInvoices)
				r.Get("/tickets", h.Ticket.MyTickets)
				r.Post("/tickets", h.Ticket.Create)
				r.Post("/tickets/{id}/revoke", h.Ticket.Revoke)
				r.Post("/tickets/{id}/rate", h.Ticket.Rate)
			})

			// Employee portal.
			r.Route("/portal/employee", func(r chi.Router) {
				r.Use(middleware.RequireRoute(access.RouteEmployeePortal))
				r.Get("/payslips", h.Payroll.MyPayslips)
			})
		})
	})
	return r
}
