package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/vedartha/erp-backend-go/internal/domain/branch"
	"github.com/vedartha/erp-backend-go/internal/domain/client"
	"github.com/vedartha/erp-backend-go/internal/domain/identity"
	"github.com/vedartha/erp-backend-go/internal/domain/staffuser"
	"github.com/vedartha/erp-backend-go/internal/pkg/authprovider"
	"github.com/vedartha/erp-backend-go/internal/pkg/blob"
)

// Service persists one identity snapshot across restarts and restores it only
// after the backing directory record has been re-checked. A snapshot that no
// longer maps to a live, enabled record is cleared, never returned.
type Service interface {
	Persist(ctx context.Context, id identity.Identity) error
	// Restore returns the revalidated identity, or nil when no valid session
	// exists. Revalidation failures clear the snapshot.
	Restore(ctx context.Context) (*identity.Identity, error)
	Clear(ctx context.Context) error
	// Revalidate rebuilds an identity from its canonical record. The refresh
	// token path shares this with Restore.
	Revalidate(ctx context.Context, origin identity.Origin, uid, email string) (identity.Identity, error)
}

// snapshot is the persisted session state. Only the lookup key survives a
// restart; everything else is rebuilt from the directory.
type snapshot struct {
	Origin  identity.Origin `json:"origin"`
	UID     string          `json:"uid"`
	Email   string          `json:"email"`
	SavedAt time.Time       `json:"savedAt"`
}

type SessionServiceImpl struct {
	storage  blob.Storage
	key      string
	clients  client.Repository
	branches branch.Repository
	staff    staffuser.Repository
	provider authprovider.Provider
}

func NewSessionService(
	storage blob.Storage,
	key string,
	clients client.Repository,
	branches branch.Repository,
	staff staffuser.Repository,
	provider authprovider.Provider,
) Service {
	return &SessionServiceImpl{
		storage:  storage,
		key:      key,
		clients:  clients,
		branches: branches,
		staff:    staff,
		provider: provider,
	}
}

func (s *SessionServiceImpl) Persist(ctx context.Context, id identity.Identity) error {
	if err := id.Validate(); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	data, err := json.Marshal(snapshot{
		Origin:  id.Origin,
		UID:     id.UID,
		Email:   id.Email,
		SavedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return s.storage.Save(ctx, s.key, data)
}

func (s *SessionServiceImpl) Restore(ctx context.Context) (*identity.Identity, error) {
	data, err := s.storage.Load(ctx, s.key)
	if err != nil {
		if err == blob.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		slog.Warn("Session snapshot unreadable, clearing", "error", err)
		return nil, s.Clear(ctx)
	}

	id, err := s.Revalidate(ctx, snap.Origin, snap.UID, snap.Email)
	if err != nil {
		slog.Info("Session revalidation failed, clearing", "origin", snap.Origin, "uid", snap.UID, "error", err)
		if clearErr := s.Clear(ctx); clearErr != nil {
			return nil, clearErr
		}
		return nil, nil
	}
	return &id, nil
}

func (s *SessionServiceImpl) Clear(ctx context.Context) error {
	return s.storage.Delete(ctx, s.key)
}

func (s *SessionServiceImpl) Revalidate(ctx context.Context, origin identity.Origin, uid, email string) (identity.Identity, error) {
	switch origin {
	case identity.OriginClient:
		c, err := s.clients.GetByID(ctx, uid)
		if err != nil {
			return identity.Identity{}, fmt.Errorf("revalidate client %s: %w", uid, err)
		}
		if !c.PortalAccess {
			return identity.Identity{}, fmt.Errorf("client %s portal access disabled", uid)
		}
		return c.Identity(), nil

	case identity.OriginBranchUser:
		b, err := s.branches.GetByID(ctx, uid)
		if err != nil {
			return identity.Identity{}, fmt.Errorf("revalidate branch %s: %w", uid, err)
		}
		return b.Identity(), nil

	case identity.OriginStaff:
		u, err := s.staff.GetByUID(ctx, uid)
		if err != nil {
			return identity.Identity{}, fmt.Errorf("revalidate staff user %s: %w", uid, err)
		}
		return u.Identity(), nil

	case identity.OriginAdminFallback:
		user, err := s.provider.GetUserByEmail(ctx, email)
		if err != nil {
			return identity.Identity{}, fmt.Errorf("revalidate provider user %s: %w", email, err)
		}
		if user.Disabled {
			return identity.Identity{}, fmt.Errorf("provider user %s disabled", email)
		}
		return identity.Identity{
			UID:         user.UID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			Role:        identity.RoleAdmin,
			Origin:      identity.OriginAdminFallback,
		}, nil

	default:
		return identity.Identity{}, fmt.Errorf("unknown session origin %q", origin)
	}
}
