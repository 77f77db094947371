package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/vedartha/erp-backend-go/internal/pkg/directory"
)

// archivableCollections are the record sets covered by financial-year
// operations. Directory master data (clients, branches, users, employees) is
// never archived.
var archivableCollections = []string{
	directory.CollectionInvoices,
	directory.CollectionPayments,
	directory.CollectionPayroll,
	directory.CollectionTickets,
}

// Report counts the records touched by one settings operation.
type Report struct {
	Archived int `json:"archived,omitempty"`
	Restored int `json:"restored,omitempty"`
	Purged   int `json:"purged,omitempty"`
}

type Service interface {
	// CloseFinancialYear marks every unarchived transactional record as
	// archived, in store-limit-sized batches. Already-archived records are
	// skipped, so re-running after a partial failure finishes the job.
	CloseFinancialYear(ctx context.Context) (Report, error)
	// RestoreArchived clears the archived flag everywhere.
	RestoreArchived(ctx context.Context) (Report, error)
	// PurgeArchived permanently deletes archived records.
	PurgeArchived(ctx context.Context) (Report, error)
}

type SettingsServiceImpl struct {
	store directory.Store
}

func NewSettingsService(store directory.Store) Service {
	return &SettingsServiceImpl{store: store}
}

// archivedFlag is the only field these operations care about.
type archivedFlag struct {
	ID       string `json:"id"`
	Archived bool   `json:"archived"`
}

// CloseFinancialYear implements Service.
func (s *SettingsServiceImpl) CloseFinancialYear(ctx context.Context) (Report, error) {
	muts, err := s.collect(ctx, false, func(collection, id string) directory.Mutation {
		return directory.Mutation{
			Op:         directory.OpUpdate,
			Collection: collection,
			ID:         id,
			Fields:     map[string]any{"archived": true},
		}
	})
	if err != nil {
		return Report{}, err
	}
	if err := s.commit(ctx, muts); err != nil {
		return Report{}, err
	}
	slog.Info("Financial year closed", "archived", len(muts))
	return Report{Archived: len(muts)}, nil
}

// RestoreArchived implements Service.
func (s *SettingsServiceImpl) RestoreArchived(ctx context.Context) (Report, error) {
	muts, err := s.collect(ctx, true, func(collection, id string) directory.Mutation {
		return directory.Mutation{
			Op:         directory.OpUpdate,
			Collection: collection,
			ID:         id,
			Fields:     map[string]any{"archived": false},
		}
	})
	if err != nil {
		return Report{}, err
	}
	if err := s.commit(ctx, muts); err != nil {
		return Report{}, err
	}
	return Report{Restored: len(muts)}, nil
}

// PurgeArchived implements Service.
func (s *SettingsServiceImpl) PurgeArchived(ctx context.Context) (Report, error) {
	muts, err := s.collect(ctx, true, func(collection, id string) directory.Mutation {
		return directory.Mutation{
			Op:         directory.OpDelete,
			Collection: collection,
			ID:         id,
		}
	})
	if err != nil {
		return Report{}, err
	}
	if err := s.commit(ctx, muts); err != nil {
		return Report{}, err
	}
	slog.Info("Archived records purged", "purged", len(muts))
	return Report{Purged: len(muts)}, nil
}

func (s *SettingsServiceImpl) collect(ctx context.Context, archived bool, build func(collection, id string) directory.Mutation) ([]directory.Mutation, error) {
	var muts []directory.Mutation
	for _, collection := range archivableCollections {
		raws, err := s.store.QueryEquals(ctx, collection)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		for _, raw := range raws {
			var flag archivedFlag
			if err := json.Unmarshal(raw, &flag); err != nil {
				return nil, fmt.Errorf("decode %s record: %w", collection, err)
			}
			if flag.Archived == archived {
				muts = append(muts, build(collection, flag.ID))
			}
		}
	}
	return muts, nil
}

func (s *SettingsServiceImpl) commit(ctx context.Context, muts []directory.Mutation) error {
	for len(muts) > 0 {
		batch := muts
		if len(batch) > directory.BatchLimit {
			batch = muts[:directory.BatchLimit]
		}
		if err := s.store.ApplyBatch(ctx, batch); err != nil {
			return fmt.Errorf("commit settings batch: %w", err)
		}
		muts = muts[len(batch):]
	}
	return nil
}
