package docstore

import (
	"context"
	"fmt"

	"github.com/vedartha/erp-backend-go/internal/domain/staffuser"
	"github.com/vedartha/erp-backend-go/internal/pkg/directory"
)

type staffUserRepositoryImpl struct {
	store directory.Store
}

func NewStaffUserRepository(store directory.Store) staffuser.Repository {
	return &staffUserRepositoryImpl{store: store}
}

func (r *staffUserRepositoryImpl) GetByUID(ctx context.Context, uid string) (staffuser.StaffUser, error) {
	raw, err := r.store.GetByID(ctx, directory.CollectionUsers, uid)
	if err != nil {
		if err == directory.ErrNotFound {
			return staffuser.StaffUser{}, staffuser.ErrUserNotFound
		}
		return staffuser.StaffUser{}, fmt.Errorf("get staff user %s: %w", uid, err)
	}
	var u staffuser.StaffUser
	if err := directory.Decode(raw, &u); err != nil {
		return staffuser.StaffUser{}, fmt.Errorf("decode staff user %s: %w", uid, err)
	}
	return u, nil
}

// GetByLogin matches the login id against the email field first and, when
// that misses, against the employee id. Both legs require the same password
// equality the directory stores.
func (r *staffUserRepositoryImpl) GetByLogin(ctx context.Context, loginID, password string) (staffuser.StaffUser, error) {
	u, err := r.queryOne(ctx,
		directory.Eq("email", loginID),
		directory.Eq("password", password),
	)
	if err == nil {
		return u, nil
	}
	if err != staffuser.ErrUserNotFound {
		return staffuser.StaffUser{}, err
	}
	return r.queryOne(ctx,
		directory.Eq("employeeId", loginID),
		directory.Eq("password", password),
	)
}

func (r *staffUserRepositoryImpl) GetByEmail(ctx context.Context, email string) (staffuser.StaffUser, error) {
	return r.queryOne(ctx, directory.Eq("email", email))
}

func (r *staffUserRepositoryImpl) ListByEmployeeID(ctx context.Context, employeeID string) ([]staffuser.StaffUser, error) {
	raws, err := r.store.QueryEquals(ctx, directory.CollectionUsers, directory.Eq("employeeId", employeeID))
	if err != nil {
		return nil, fmt.Errorf("query staff users by employee: %w", err)
	}
	return directory.DecodeAll[staffuser.StaffUser](raws)
}

func (r *staffUserRepositoryImpl) queryOne(ctx context.Context, preds ...directory.Predicate) (staffuser.StaffUser, error) {
	raws, err := r.store.QueryEquals(ctx, directory.CollectionUsers, preds...)
	if err != nil {
		return staffuser.StaffUser{}, fmt.Errorf("query staff users: %w", err)
	}
	if len(raws) == 0 {
		return staffuser.StaffUser{}, staffuser.ErrUserNotFound
	}
	var u staffuser.StaffUser
	if err := directory.Decode(raws[0], &u); err != nil {
		return staffuser.StaffUser{}, fmt.Errorf("decode staff user: %w", err)
	}
	return u, nil
}

func (r *staffUserRepositoryImpl) Put(ctx context.Context, u staffuser.StaffUser) error {
	return r.store.Put(ctx, directory.CollectionUsers, u.UID, u)
}

func (r *staffUserRepositoryImpl) Delete(ctx context.Context, uid string) error {
	return r.store.Delete(ctx, directory.CollectionUsers, uid)
}
