package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedartha/erp-backend-go/internal/domain/auth"
	"github.com/vedartha/erp-backend-go/internal/domain/branch"
	"github.com/vedartha/erp-backend-go/internal/domain/client"
	"github.com/vedartha/erp-backend-go/internal/domain/identity"
	"github.com/vedartha/erp-backend-go/internal/domain/staffuser"
	"github.com/vedartha/erp-backend-go/internal/pkg/authprovider"
	"github.com/vedartha/erp-backend-go/internal/pkg/directory"
	"github.com/vedartha/erp-backend-go/internal/repository/docstore"
)

// fakeProvider counts verification attempts so tests can assert the fallback
// is consulted exactly once, or never.
type fakeProvider struct {
	users       map[string]authprovider.User
	passwords   map[string]string
	verifyCalls int
}

func (f *fakeProvider) VerifyEmailPassword(ctx context.Context, email, password string) (authprovider.User, error) {
	f.verifyCalls++
	u, ok := f.users[email]
	if !ok || f.passwords[email] != password {
		return authprovider.User{}, authprovider.ErrUserNotFound
	}
	if u.Disabled {
		return authprovider.User{}, authprovider.ErrUserDisabled
	}
	return u, nil
}

func (f *fakeProvider) GetUserByEmail(ctx context.Context, email string) (authprovider.User, error) {
	u, ok := f.users[email]
	if !ok {
		return authprovider.User{}, authprovider.ErrUserNotFound
	}
	return u, nil
}

type resolverFixture struct {
	store    *directory.MemoryStore
	provider *fakeProvider
	resolver auth.Resolver
}

func newResolverFixture(t *testing.T) *resolverFixture {
	t.Helper()
	store := directory.NewMemoryStore()
	provider := &fakeProvider{
		users:     make(map[string]authprovider.User),
		passwords: make(map[string]string),
	}
	resolver := NewCredentialResolver(
		docstore.NewClientRepository(store),
		docstore.NewBranchRepository(store),
		docstore.NewStaffUserRepository(store),
		provider,
	)
	return &resolverFixture{store: store, provider: provider, resolver: resolver}
}

func (f *resolverFixture) seedClient(t *testing.T, c client.Client) {
	t.Helper()
	require.NoError(t, f.store.Put(context.Background(), directory.CollectionClients, c.ID, c))
}

func (f *resolverFixture) seedBranch(t *testing.T, b branch.Branch) {
	t.Helper()
	require.NoError(t, f.store.Put(context.Background(), directory.CollectionBranches, b.ID, b))
}

func (f *resolverFixture) seedStaffUser(t *testing.T, u staffuser.StaffUser) {
	t.Helper()
	require.NoError(t, f.store.Put(context.Background(), directory.CollectionUsers, u.UID, u))
}

func TestCredentialResolver_ClientPortal_Success(t *testing.T) {
	f := newResolverFixture(t)
	f.seedClient(t, client.Client{
		ID:             "acme",
		Name:           "Acme Traders",
		Email:          "accounts@acme.example",
		Status:         client.StatusActive,
		PortalAccess:   true,
		PortalPassword: "s3cret",
	})

	id, err := f.resolver.Resolve(context.Background(), "acme", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleClient, id.Role)
	assert.Equal(t, identity.OriginClient, id.Origin)
	assert.Equal(t, "acme", id.ClientID)
	assert.Empty(t, id.AllowedBranchIDs)
	assert.Zero(t, f.provider.verifyCalls)
}

func TestCredentialResolver_ClientPortal_AccessDisabledStopsChain(t *testing.T) {
	f := newResolverFixture(t)
	f.seedClient(t, client.Client{
		ID:             "acme",
		Email:          "accounts@acme.example",
		PortalAccess:   false,
		PortalPassword: "s3cret",
	})
	// Even a matching provider account must not rescue a disabled client.
	f.provider.users["acme"] = authprovider.User{UID: "p-1", Email: "acme"}
	f.provider.passwords["acme"] = "s3cret"

	_, err := f.resolver.Resolve(context.Background(), "acme", "s3cret")
	assert.ErrorIs(t, err, auth.ErrAccessDisabled)
	assert.Zero(t, f.provider.verifyCalls)
}

func TestCredentialResolver_BranchPortal(t *testing.T) {
	f := newResolverFixture(t)
	f.seedBranch(t, branch.Branch{
		ID:             "branch-blr",
		Name:           "Bengaluru",
		Email:          "blr@vedartha.example",
		PortalUsername: "blr-manager",
		PortalPassword: "s3cret",
	})

	id, err := f.resolver.Resolve(context.Background(), "blr-manager", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleBranchManager, id.Role)
	assert.Equal(t, identity.OriginBranchUser, id.Origin)
	assert.Equal(t, []string{"branch-blr"}, id.AllowedBranchIDs)
}

func TestCredentialResolver_StaffByEmailAndEmployeeID(t *testing.T) {
	f := newResolverFixture(t)
	f.seedStaffUser(t, staffuser.StaffUser{
		UID:        "uid-1",
		Email:      "911001",
		Password:   "911001",
		Role:       identity.RoleEmployee,
		EmployeeID: "911001",
	})
	f.seedStaffUser(t, staffuser.StaffUser{
		UID:      "uid-2",
		Email:    "meera@vedartha.example",
		Password: "pass",
		Role:     identity.RoleAccountant,
	})

	id, err := f.resolver.Resolve(context.Background(), "911001", "911001")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleEmployee, id.Role)
	assert.Equal(t, "911001", id.EmployeeID)

	id, err = f.resolver.Resolve(context.Background(), "meera@vedartha.example", "pass")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleAccountant, id.Role)
	assert.Equal(t, identity.OriginStaff, id.Origin)
}

func TestCredentialResolver_ProviderFallback_ImplicitAdmin(t *testing.T) {
	f := newResolverFixture(t)
	f.provider.users["owner@vedartha.example"] = authprovider.User{
		UID:         "p-owner",
		Email:       "owner@vedartha.example",
		DisplayName: "Owner",
	}
	f.provider.passwords["owner@vedartha.example"] = "pass"

	id, err := f.resolver.Resolve(context.Background(), "owner@vedartha.example", "pass")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleAdmin, id.Role)
	assert.Equal(t, identity.OriginAdminFallback, id.Origin)
	assert.Equal(t, 1, f.provider.verifyCalls)
}

func TestCredentialResolver_ProviderFallback_Disabled(t *testing.T) {
	f := newResolverFixture(t)
	f.provider.users["owner@vedartha.example"] = authprovider.User{
		UID:      "p-owner",
		Email:    "owner@vedartha.example",
		Disabled: true,
	}
	f.provider.passwords["owner@vedartha.example"] = "pass"

	_, err := f.resolver.Resolve(context.Background(), "owner@vedartha.example", "pass")
	assert.ErrorIs(t, err, auth.ErrAccessDisabled)
}

func TestCredentialResolver_NoMatch_PlainLoginSkipsProvider(t *testing.T) {
	f := newResolverFixture(t)

	_, err := f.resolver.Resolve(context.Background(), "nobody", "nothing")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.Zero(t, f.provider.verifyCalls, "only email-shaped logins reach the provider")
}

func TestCredentialResolver_NoMatch_EmailLoginTriesProviderOnce(t *testing.T) {
	f := newResolverFixture(t)

	_, err := f.resolver.Resolve(context.Background(), "nobody@vedartha.example", "nothing")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.Equal(t, 1, f.provider.verifyCalls)
}

func TestCredentialResolver_DirectoryOrderBeatsProvider(t *testing.T) {
	f := newResolverFixture(t)
	f.seedStaffUser(t, staffuser.StaffUser{
		UID:      "uid-2",
		Email:    "shared@vedartha.example",
		Password: "pass",
		Role:     identity.RoleAccountant,
	})
	f.provider.users["shared@vedartha.example"] = authprovider.User{UID: "p-2", Email: "shared@vedartha.example"}
	f.provider.passwords["shared@vedartha.example"] = "pass"

	id, err := f.resolver.Resolve(context.Background(), "shared@vedartha.example", "pass")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleAccountant, id.Role)
	assert.Zero(t, f.provider.verifyCalls)
}

func TestCredentialResolver_ResolveByEmail_NeverFallsBackToProvider(t *testing.T) {
	f := newResolverFixture(t)
	f.provider.users["owner@vedartha.example"] = authprovider.User{UID: "p-owner", Email: "owner@vedartha.example"}

	_, err := f.resolver.ResolveByEmail(context.Background(), "owner@vedartha.example")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.Zero(t, f.provider.verifyCalls)
}

func TestCredentialResolver_ResolveByEmail_DisabledClient(t *testing.T) {
	f := newResolverFixture(t)
	f.seedClient(t, client.Client{
		ID:           "acme",
		Email:        "accounts@acme.example",
		PortalAccess: false,
	})

	_, err := f.resolver.ResolveByEmail(context.Background(), "accounts@acme.example")
	assert.ErrorIs(t, err, auth.ErrAccessDisabled)
}
