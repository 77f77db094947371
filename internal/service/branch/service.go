package branch

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vedartha/erp-backend-go/internal/domain/branch"
)

type BranchServiceImpl struct {
	branches branch.Repository
}

func NewBranchService(branches branch.Repository) branch.Service {
	return &BranchServiceImpl{branches: branches}
}

// List implements branch.Service.
func (s *BranchServiceImpl) List(ctx context.Context) ([]branch.Branch, error) {
	return s.branches.List(ctx)
}

// GetByID implements branch.Service.
func (s *BranchServiceImpl) GetByID(ctx context.Context, id string) (branch.Branch, error) {
	return s.branches.GetByID(ctx, id)
}

// Create implements branch.Service.
func (s *BranchServiceImpl) Create(ctx context.Context, b branch.Branch) (branch.Branch, error) {
	if b.Name == "" {
		return branch.Branch{}, fmt.Errorf("branch needs a name")
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.NextInvoiceNumber == 0 {
		b.NextInvoiceNumber = 1
	}
	if err := s.branches.Put(ctx, b); err != nil {
		return branch.Branch{}, fmt.Errorf("create branch: %w", err)
	}
	return b, nil
}

// Update implements branch.Service. The invoice counter is never updated
// through here; posting invoices owns it.
func (s *BranchServiceImpl) Update(ctx context.Context, b branch.Branch) error {
	current, err := s.branches.GetByID(ctx, b.ID)
	if err != nil {
		return err
	}
	b.NextInvoiceNumber = current.NextInvoiceNumber
	return s.branches.Put(ctx, b)
}

// Delete implements branch.Service.
func (s *BranchServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.branches.GetByID(ctx, id); err != nil {
		return err
	}
	return s.branches.Delete(ctx, id)
}

// SetPortalCredentials implements branch.Service.
func (s *BranchServiceImpl) SetPortalCredentials(ctx context.Context, id, username, password string) error {
	b, err := s.branches.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if username == "" || password == "" {
		return fmt.Errorf("portal credentials need a username and password")
	}
	b.PortalUsername = username
	b.PortalPassword = password
	return s.branches.Put(ctx, b)
}
