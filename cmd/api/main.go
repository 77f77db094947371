package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"

	"github.com/vedartha/erp-backend-go/internal/config"
	appHTTP "github.com/vedartha/erp-backend-go/internal/handler/http"
	"github.com/vedartha/erp-backend-go/internal/pkg/authprovider"
	"github.com/vedartha/erp-backend-go/internal/pkg/blob"
	"github.com/vedartha/erp-backend-go/internal/pkg/cron"
	"github.com/vedartha/erp-backend-go/internal/pkg/directory"
	"github.com/vedartha/erp-backend-go/internal/pkg/jwt"
	"github.com/vedartha/erp-backend-go/internal/pkg/oauth"
	"github.com/vedartha/erp-backend-go/internal/pkg/sse"
	"github.com/vedartha/erp-backend-go/internal/repository/docstore"
	serviceAuth "github.com/vedartha/erp-backend-go/internal/service/auth"
	billingService "github.com/vedartha/erp-backend-go/internal/service/billing"
	branchService "github.com/vedartha/erp-backend-go/internal/service/branch"
	clientService "github.com/vedartha/erp-backend-go/internal/service/client"
	employeeService "github.com/vedartha/erp-backend-go/internal/service/employee"
	"github.com/vedartha/erp-backend-go/internal/service/migration"
	payrollService "github.com/vedartha/erp-backend-go/internal/service/payroll"
	sessionService "github.com/vedartha/erp-backend-go/internal/service/session"
	"github.com/vedartha/erp-backend-go/internal/service/settings"
	ticketService "github.com/vedartha/erp-backend-go/internal/service/ticket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, firebaseApp, err := newStore(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to initialize directory store: ", err)
	}
	defer store.Close()

	clientRepo := docstore.NewClientRepository(store)
	branchRepo := docstore.NewBranchRepository(store)
	staffUserRepo := docstore.NewStaffUserRepository(store)
	employeeRepo := docstore.NewEmployeeRepository(store)
	payrollRepo := docstore.NewPayrollRepository(store)
	ticketRepo := docstore.NewTicketRepository(store)
	invoiceRepo := docstore.NewInvoiceRepository(store)
	paymentRepo := docstore.NewPaymentRepository(store)

	provider, err := authprovider.NewFirebaseProvider(ctx, firebaseApp, cfg.Firebase.WebAPIKey)
	if err != nil {
		log.Fatal("Failed to initialize identity provider: ", err)
	}

	sessionStorage, err := blob.NewLocalStorage(cfg.Session.Dir)
	if err != nil {
		log.Fatal("Failed to initialize session storage: ", err)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	sessions := sessionService.NewSessionService(sessionStorage, cfg.Session.Key, clientRepo, branchRepo, staffUserRepo, provider)
	resolver := serviceAuth.NewCredentialResolver(clientRepo, branchRepo, staffUserRepo, provider)
	authSvc := serviceAuth.NewAuthService(resolver, JWTService, GoogleService, sessions)

	scheme := migration.Scheme{
		CurrentPrefix: cfg.Migration.CurrentPrefix,
		BaseOffset:    cfg.Migration.BaseOffset,
	}
	migrator := migration.NewMigrator(store, employeeRepo, payrollRepo, staffUserRepo, scheme)

	clientSvc := clientService.NewClientService(clientRepo)
	branchSvc := branchService.NewBranchService(branchRepo)
	employeeSvc := employeeService.NewEmployeeService(store, employeeRepo, staffUserRepo, scheme)
	payrollSvc := payrollService.NewPayrollService(store, payrollRepo, employeeRepo)
	ticketSvc := ticketService.NewTicketService(ticketRepo, clientRepo)
	billingSvc := billingService.NewBillingService(store, invoiceRepo, paymentRepo, branchRepo, clientRepo)
	settingsSvc := settings.NewSettingsService(store)

	// Legacy employee ids are renumbered on every employee change, with a
	// periodic sweep as the safety net.
	if err := migrator.Watch(ctx); err != nil {
		log.Fatal("Failed to start migration watcher: ", err)
	}
	scheduler := cron.NewScheduler()
	scheduler.AddJob("employee-id-sweep", cfg.Migration.SweepInterval, migrator.Sweep)
	scheduler.Start()
	defer scheduler.Stop()

	hub := sse.NewHub()
	feedHub(ctx, store, hub, directory.CollectionTickets, directory.CollectionInvoices, directory.CollectionPayments)

	handlers := appHTTP.Handlers{
		Auth:     appHTTP.NewAuthHandler(JWTService, authSvc, GoogleService, sessions, cfg.App.FrontendURL),
		Client:   appHTTP.NewClientHandler(clientSvc),
		Branch:   appHTTP.NewBranchHandler(branchSvc),
		Employee: appHTTP.NewEmployeeHandler(employeeSvc),
		Payroll:  appHTTP.NewPayrollHandler(payrollSvc),
		Ticket:   appHTTP.NewTicketHandler(ticketSvc),
		Billing:  appHTTP.NewBillingHandler(billingSvc),
		Settings: appHTTP.NewSettingsHandler(settingsSvc, migrator),
		Events:   appHTTP.NewEventsHandler(hub, JWTService),
	}

	router := appHTTP.NewRouter(JWTService, handlers, cfg.App.AllowedOrigins)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("Server running", "addr", srv.Addr, "env", cfg.App.Env, "directory", cfg.Directory.Driver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: ", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown error", "error", err)
	}
}

// newStore builds the configured directory backend. The Firebase app is
// returned alongside because the identity provider needs it regardless of
// which backend serves the directory.
func newStore(ctx context.Context, cfg *config.Config) (directory.Store, *firebase.App, error) {
	app, err := directory.NewFirebaseApp(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		return nil, nil, fmt.Errorf("firebase app: %w", err)
	}

	switch cfg.Directory.Driver {
	case "firestore":
		store, err := directory.NewFirestoreStore(ctx, app)
		if err != nil {
			return nil, nil, fmt.Errorf("firestore store: %w", err)
		}
		return store, app, nil
	case "postgres":
		store, err := directory.NewPostgresStore(ctx, cfg.Directory.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres store: %w", err)
		}
		return store, app, nil
	case "memory":
		return directory.NewMemoryStore(), app, nil
	default:
		return nil, nil, fmt.Errorf("unsupported directory driver: %s", cfg.Directory.Driver)
	}
}

// feedHub bridges directory change events onto the SSE hub so portal and
// console clients can refresh without polling.
func feedHub(ctx context.Context, store directory.Store, hub *sse.Hub, collections ...string) {
	for _, collection := range collections {
		events, err := store.Watch(ctx, collection)
		if err != nil {
			slog.Error("Watch failed, live updates disabled for collection", "collection", collection, "error", err)
			continue
		}
		go func(collection string, events <-chan directory.Event) {
			for ev := range events {
				hub.Publish(collection, sse.Event{
					Topic: collection,
					Event: string(ev.Kind),
					Data:  map[string]string{"collection": ev.Collection, "id": ev.ID},
				})
			}
		}(collection, events)
	}
}
