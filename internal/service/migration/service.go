package migration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vedartha/erp-backend-go/internal/domain/employee"
	"github.com/vedartha/erp-backend-go/internal/domain/payroll"
	"github.com/vedartha/erp-backend-go/internal/domain/staffuser"
	"github.com/vedartha/erp-backend-go/internal/pkg/directory"
)

// Report summarises one migrator run.
type Report struct {
	Scanned  int `json:"scanned"`
	Migrated int `json:"migrated"`
	Batches  int `json:"batches"`
}

// Migrator renumbers legacy employee codes and repoints every dependent
// record. Runs are idempotent: a run over a directory with no legacy ids
// performs zero writes, so at-least-once triggering is safe.
type Migrator struct {
	store     directory.Store
	employees employee.Repository
	payrolls  payroll.Repository
	staff     staffuser.Repository
	scheme    Scheme

	// One pass at a time per process. Cross-process races are resolved by
	// the Create-on-new-id claim inside each batch.
	mu sync.Mutex
}

func NewMigrator(
	store directory.Store,
	employees employee.Repository,
	payrolls payroll.Repository,
	staff staffuser.Repository,
	scheme Scheme,
) *Migrator {
	return &Migrator{
		store:     store,
		employees: employees,
		payrolls:  payrolls,
		staff:     staff,
		scheme:    scheme,
	}
}

// Run executes one migration pass.
func (m *Migrator) Run(ctx context.Context) (Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all, err := m.employees.List(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("scan employees: %w", err)
	}
	report := Report{Scanned: len(all)}

	assignments := Plan(all, m.scheme)
	if len(assignments) == 0 {
		return report, nil
	}

	cmd, err := BuildCommand(ctx, assignments, m.employees, m.payrolls, m.staff)
	if err != nil {
		return report, err
	}

	batches := cmd.Batches(directory.BatchLimit)
	for i, batch := range batches {
		if err := m.store.ApplyBatch(ctx, batch); err != nil {
			if errors.Is(err, directory.ErrAlreadyExists) {
				// Another pass claimed one of the new ids. Back off; the
				// records it did not cover still match the legacy pattern
				// and will be picked up on the next trigger.
				slog.Info("Migration batch lost id claim, backing off",
					"batch", i+1, "batches", len(batches))
				return report, nil
			}
			return report, fmt.Errorf("commit migration batch %d/%d: %w", i+1, len(batches), err)
		}
		report.Batches++
	}

	report.Migrated = len(assignments)
	slog.Info("Employee id migration completed",
		"migrated", report.Migrated, "batches", report.Batches)
	return report, nil
}

// Watch runs a pass on every employee-collection change until ctx is done.
// Failures are logged and swallowed: a legacy record left behind is retried
// on the next change notification or the periodic sweep.
func (m *Migrator) Watch(ctx context.Context) error {
	events, err := m.store.Watch(ctx, directory.CollectionEmployees)
	if err != nil {
		return fmt.Errorf("watch employees: %w", err)
	}

	go func() {
		for range events {
			if _, err := m.Run(ctx); err != nil {
				slog.Error("Triggered migration run failed", "error", err)
			}
		}
	}()
	return nil
}

// Sweep is the periodic safety net behind Watch, registered as a cron job.
func (m *Migrator) Sweep(ctx context.Context) error {
	_, err := m.Run(ctx)
	return err
}
