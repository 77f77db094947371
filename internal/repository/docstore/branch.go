package docstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/vedartha/erp-backend-go/internal/domain/branch"
	"github.com/vedartha/erp-backend-go/internal/pkg/directory"
)

type branchRepositoryImpl struct {
	store directory.Store
}

func NewBranchRepository(store directory.Store) branch.Repository {
	return &branchRepositoryImpl{store: store}
}

func (r *branchRepositoryImpl) GetByID(ctx context.Context, id string) (branch.Branch, error) {
	raw, err := r.store.GetByID(ctx, directory.CollectionBranches, id)
	if err != nil {
		if err == directory.ErrNotFound {
			return branch.Branch{}, branch.ErrBranchNotFound
		}
		return branch.Branch{}, fmt.Errorf("get branch %s: %w", id, err)
	}
	var b branch.Branch
	if err := directory.Decode(raw, &b); err != nil {
		return branch.Branch{}, fmt.Errorf("decode branch %s: %w", id, err)
	}
	return b, nil
}

func (r *branchRepositoryImpl) GetByPortalLogin(ctx context.Context, username, password string) (branch.Branch, error) {
	return r.queryOne(ctx,
		directory.Eq("portalUsername", username),
		directory.Eq("portalPassword", password),
	)
}

func (r *branchRepositoryImpl) GetByEmail(ctx context.Context, email string) (branch.Branch, error) {
	return r.queryOne(ctx, directory.Eq("email", email))
}

func (r *branchRepositoryImpl) queryOne(ctx context.Context, preds ...directory.Predicate) (branch.Branch, error) {
	raws, err := r.store.QueryEquals(ctx, directory.CollectionBranches, preds...)
	if err != nil {
		return branch.Branch{}, fmt.Errorf("query branches: %w", err)
	}
	if len(raws) == 0 {
		return branch.Branch{}, branch.ErrBranchNotFound
	}
	var b branch.Branch
	if err := directory.Decode(raws[0], &b); err != nil {
		return branch.Branch{}, fmt.Errorf("decode branch: %w", err)
	}
	return b, nil
}

func (r *branchRepositoryImpl) List(ctx context.Context) ([]branch.Branch, error) {
	raws, err := r.store.QueryEquals(ctx, directory.CollectionBranches)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	branches, err := directory.DecodeAll[branch.Branch](raws)
	if err != nil {
		return nil, err
	}
	sort.Slice(branches, func(i, j int) bool { return branches[i].ID < branches[j].ID })
	return branches, nil
}

func (r *branchRepositoryImpl) Put(ctx context.Context, b branch.Branch) error {
	return r.store.Put(ctx, directory.CollectionBranches, b.ID, b)
}

func (r *branchRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, directory.CollectionBranches, id)
}
