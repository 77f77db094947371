package http

import (
	"log/slog"
	"net/http"

	"github.com/vedartha/erp-backend-go/internal/handler/http/response"
	"github.com/vedartha/erp-backend-go/internal/service/migration"
	"github.com/vedartha/erp-backend-go/internal/service/settings"
)

type SettingsHandler interface {
	CloseFinancialYear(w http.ResponseWriter, r *http.Request)
	RestoreArchived(w http.ResponseWriter, r *http.Request)
	PurgeArchived(w http.ResponseWriter, r *http.Request)
	RunMigration(w http.ResponseWriter, r *http.Request)
}

type SettingsHandlerImpl struct {
	settingsService settings.Service
	migrator        *migration.Migrator
}

func NewSettingsHandler(settingsService settings.Service, migrator *migration.Migrator) SettingsHandler {
	return &SettingsHandlerImpl{settingsService: settingsService, migrator: migrator}
}

// CloseFinancialYear implements SettingsHandler.
func (h *SettingsHandlerImpl) CloseFinancialYear(w http.ResponseWriter, r *http.Request) {
	report, err := h.settingsService.CloseFinancialYear(r.Context())
	if err != nil {
		slog.Error("Close financial year error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Financial year closed", report)
}

// RestoreArchived implements SettingsHandler.
func (h *SettingsHandlerImpl) RestoreArchived(w http.ResponseWriter, r *http.Request) {
	report, err := h.settingsService.RestoreArchived(r.Context())
	if err != nil {
		slog.Error("Restore archived error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Archived records restored", report)
}

// PurgeArchived implements SettingsHandler.
func (h *SettingsHandlerImpl) PurgeArchived(w http.ResponseWriter, r *http.Request) {
	report, err := h.settingsService.PurgeArchived(r.Context())
	if err != nil {
		slog.Error("Purge archived error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Archived records purged", report)
}

// RunMigration implements SettingsHandler. Manual trigger for the employee id
// migration; the watch and sweep triggers run the same pass.
func (h *SettingsHandlerImpl) RunMigration(w http.ResponseWriter, r *http.Request) {
	report, err := h.migrator.Run(r.Context())
	if err != nil {
		slog.Error("Manual migration run error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Migration run completed", report)
}
