package migration

import (
	"context"
	"fmt"

	"github.com/vedartha/erp-backend-go/internal/domain/employee"
	"github.com/vedartha/erp-backend-go/internal/domain/payroll"
	"github.com/vedartha/erp-backend-go/internal/domain/staffuser"
	"github.com/vedartha/erp-backend-go/internal/pkg/directory"
)

// MutationGroup is the complete rewrite for one employee. Groups are the unit
// of atomicity: chunking never splits a group across batches, so any single
// employee is observed either fully migrated or not at all.
type MutationGroup []directory.Mutation

// Command is one planned migration run, built up front so execution is just
// committing batches.
type Command struct {
	Assignments []Assignment
	Groups      []MutationGroup
}

// BuildCommand expands assignments into per-employee mutation groups: create
// the employee under the new id, delete the old record, and repoint every
// payroll record and staff user that references the old id.
//
// The create is deliberately a Create, not a Set. If a concurrent run already
// claimed the new id the batch fails as a whole and this run backs off.
func BuildCommand(
	ctx context.Context,
	assignments []Assignment,
	employees employee.Repository,
	payrolls payroll.Repository,
	staff staffuser.Repository,
) (Command, error) {
	cmd := Command{Assignments: assignments}

	for _, as := range assignments {
		emp, err := employees.GetByID(ctx, as.OldID)
		if err != nil {
			return Command{}, fmt.Errorf("load employee %s: %w", as.OldID, err)
		}

		group := MutationGroup{
			{
				Op:         directory.OpCreate,
				Collection: directory.CollectionEmployees,
				ID:         as.NewID,
				Doc:        emp.WithID(as.NewID),
			},
			{
				Op:         directory.OpDelete,
				Collection: directory.CollectionEmployees,
				ID:         as.OldID,
			},
		}

		records, err := payrolls.ListByEmployeeID(ctx, as.OldID)
		if err != nil {
			return Command{}, fmt.Errorf("load payroll records for %s: %w", as.OldID, err)
		}
		for _, rec := range records {
			group = append(group, directory.Mutation{
				Op:         directory.OpUpdate,
				Collection: directory.CollectionPayroll,
				ID:         rec.ID,
				Fields:     map[string]any{"employeeId": as.NewID},
			})
		}

		users, err := staff.ListByEmployeeID(ctx, as.OldID)
		if err != nil {
			return Command{}, fmt.Errorf("load staff users for %s: %w", as.OldID, err)
		}
		for _, u := range users {
			// Provisioned portal accounts log in with the employee code as
			// both email and password, so those move with the id.
			group = append(group, directory.Mutation{
				Op:         directory.OpUpdate,
				Collection: directory.CollectionUsers,
				ID:         u.UID,
				Fields: map[string]any{
					"employeeId": as.NewID,
					"email":      as.NewID,
					"password":   as.NewID,
				},
			})
		}

		cmd.Groups = append(cmd.Groups, group)
	}
	return cmd, nil
}

// Batches packs the groups into batches of at most limit mutations without
// splitting any group. A group larger than the limit becomes its own
// oversized batch rather than being torn apart.
func (c Command) Batches(limit int) [][]directory.Mutation {
	var batches [][]directory.Mutation
	var current []directory.Mutation

	for _, group := range c.Groups {
		if len(current) > 0 && len(current)+len(group) > limit {
			batches = append(batches, current)
			current = nil
		}
		current = append(current, group...)
	}
	if len(current) > 0 {
		batches = append(batches, current)
	}
	return batches
}

// MutationCount is the total number of mutations across all groups.
func (c Command) MutationCount() int {
	total := 0
	for _, group := range c.Groups {
		total += len(group)
	}
	return total
}
