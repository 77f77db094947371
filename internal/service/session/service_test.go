package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedartha/erp-backend-go/internal/domain/client"
	"github.com/vedartha/erp-backend-go/internal/domain/identity"
	"github.com/vedartha/erp-backend-go/internal/domain/staffuser"
	"github.com/vedartha/erp-backend-go/internal/pkg/authprovider"
	"github.com/vedartha/erp-backend-go/internal/pkg/blob"
	"github.com/vedartha/erp-backend-go/internal/pkg/directory"
	"github.com/vedartha/erp-backend-go/internal/repository/docstore"
)

type stubProvider struct {
	users map[string]authprovider.User
}

func (p *stubProvider) VerifyEmailPassword(ctx context.Context, email, password string) (authprovider.User, error) {
	return authprovider.User{}, authprovider.ErrUserNotFound
}

func (p *stubProvider) GetUserByEmail(ctx context.Context, email string) (authprovider.User, error) {
	u, ok := p.users[email]
	if !ok {
		return authprovider.User{}, authprovider.ErrUserNotFound
	}
	return u, nil
}

type sessionFixture struct {
	store    *directory.MemoryStore
	storage  *blob.MemoryStorage
	provider *stubProvider
	sessions Service
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	store := directory.NewMemoryStore()
	storage := blob.NewMemoryStorage()
	provider := &stubProvider{users: make(map[string]authprovider.User)}
	sessions := NewSessionService(
		storage,
		"last_session",
		docstore.NewClientRepository(store),
		docstore.NewBranchRepository(store),
		docstore.NewStaffUserRepository(store),
		provider,
	)
	return &sessionFixture{store: store, storage: storage, provider: provider, sessions: sessions}
}

func (f *sessionFixture) snapshotExists(t *testing.T) bool {
	t.Helper()
	_, err := f.storage.Load(context.Background(), "last_session")
	if err == blob.ErrNotFound {
		return false
	}
	require.NoError(t, err)
	return true
}

func TestSession_RestoreWithoutSnapshot(t *testing.T) {
	f := newSessionFixture(t)

	id, err := f.sessions.Restore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestSession_PersistAndRestoreStaff(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t)

	u := staffuser.StaffUser{
		UID:              "uid-1",
		Email:            "meera@vedartha.example",
		DisplayName:      "Meera",
		Role:             identity.RoleAccountant,
		AllowedBranchIDs: []string{"branch-blr"},
	}
	require.NoError(t, f.store.Put(ctx, directory.CollectionUsers, u.UID, u))
	require.NoError(t, f.sessions.Persist(ctx, u.Identity()))

	restored, err := f.sessions.Restore(ctx)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, u.Identity(), *restored)
}

func TestSession_RestoreRebuildsFromDirectory(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t)

	u := staffuser.StaffUser{
		UID:        "uid-1",
		Email:      "8341",
		Password:   "8341",
		Role:       identity.RoleEmployee,
		EmployeeID: "8341",
	}
	require.NoError(t, f.store.Put(ctx, directory.CollectionUsers, u.UID, u))
	require.NoError(t, f.sessions.Persist(ctx, u.Identity()))

	// The employee id migration rewrote the record between sessions. The
	// restored identity must carry the new code, not the persisted one.
	u.Email = "911001"
	u.Password = "911001"
	u.EmployeeID = "911001"
	require.NoError(t, f.store.Put(ctx, directory.CollectionUsers, u.UID, u))

	restored, err := f.sessions.Restore(ctx)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, "911001", restored.EmployeeID)
}

func TestSession_RestoreFailsClosedOnDeletedRecord(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t)

	u := staffuser.StaffUser{UID: "uid-1", Email: "meera@vedartha.example", Role: identity.RoleAccountant}
	require.NoError(t, f.store.Put(ctx, directory.CollectionUsers, u.UID, u))
	require.NoError(t, f.sessions.Persist(ctx, u.Identity()))

	require.NoError(t, f.store.Delete(ctx, directory.CollectionUsers, u.UID))

	restored, err := f.sessions.Restore(ctx)
	require.NoError(t, err)
	assert.Nil(t, restored)
	assert.False(t, f.snapshotExists(t))
}

func TestSession_RestoreFailsClosedOnDisabledPortalAccess(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t)

	c := client.Client{
		ID:           "acme",
		Email:        "accounts@acme.example",
		PortalAccess: true,
	}
	require.NoError(t, f.store.Put(ctx, directory.CollectionClients, c.ID, c))
	require.NoError(t, f.sessions.Persist(ctx, c.Identity()))

	c.PortalAccess = false
	require.NoError(t, f.store.Put(ctx, directory.CollectionClients, c.ID, c))

	restored, err := f.sessions.Restore(ctx)
	require.NoError(t, err)
	assert.Nil(t, restored)
	assert.False(t, f.snapshotExists(t))
}

func TestSession_RestoreCorruptSnapshotClears(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t)
	require.NoError(t, f.storage.Save(ctx, "last_session", []byte("not json")))

	restored, err := f.sessions.Restore(ctx)
	require.NoError(t, err)
	assert.Nil(t, restored)
	assert.False(t, f.snapshotExists(t))
}

func TestSession_RevalidateAdminFallback(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t)
	f.provider.users["owner@vedartha.example"] = authprovider.User{
		UID:         "p-owner",
		Email:       "owner@vedartha.example",
		DisplayName: "Owner",
	}

	id, err := f.sessions.Revalidate(ctx, identity.OriginAdminFallback, "p-owner", "owner@vedartha.example")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleAdmin, id.Role)

	f.provider.users["owner@vedartha.example"] = authprovider.User{
		UID:      "p-owner",
		Email:    "owner@vedartha.example",
		Disabled: true,
	}
	_, err = f.sessions.Revalidate(ctx, identity.OriginAdminFallback, "p-owner", "owner@vedartha.example")
	assert.Error(t, err)
}

func TestSession_Clear(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t)

	u := staffuser.StaffUser{UID: "uid-1", Email: "meera@vedartha.example", Role: identity.RoleAccountant}
	require.NoError(t, f.store.Put(ctx, directory.CollectionUsers, u.UID, u))
	require.NoError(t, f.sessions.Persist(ctx, u.Identity()))

	require.NoError(t, f.sessions.Clear(ctx))
	assert.False(t, f.snapshotExists(t))
}
