package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/vedartha/erp-backend-go/internal/domain/auth"
	"github.com/vedartha/erp-backend-go/internal/domain/branch"
	"github.com/vedartha/erp-backend-go/internal/domain/client"
	"github.com/vedartha/erp-backend-go/internal/domain/identity"
	"github.com/vedartha/erp-backend-go/internal/domain/staffuser"
	"github.com/vedartha/erp-backend-go/internal/pkg/authprovider"
)

// strategyFunc is one credential strategy. It reports whether it structurally
// matched the login; a match decides the outcome even when the result is an
// error, so a recognised-but-disabled account never falls through to a weaker
// strategy.
type strategyFunc func(ctx context.Context, loginID, secret string) (identity.Identity, bool, error)

// CredentialResolverImpl walks the credential strategies in a fixed order:
// client portal, branch portal, staff directory, then the delegated provider
// fallback. The first structural match wins.
type CredentialResolverImpl struct {
	clients  client.Repository
	branches branch.Repository
	staff    staffuser.Repository
	provider authprovider.Provider
}

func NewCredentialResolver(
	clients client.Repository,
	branches branch.Repository,
	staff staffuser.Repository,
	provider authprovider.Provider,
) auth.Resolver {
	return &CredentialResolverImpl{
		clients:  clients,
		branches: branches,
		staff:    staff,
		provider: provider,
	}
}

// Resolve implements auth.Resolver.
func (r *CredentialResolverImpl) Resolve(ctx context.Context, loginID, secret string) (identity.Identity, error) {
	strategies := []strategyFunc{
		r.clientPortal,
		r.branchPortal,
		r.staffDirectory,
		r.providerFallback,
	}
	for _, strategy := range strategies {
		id, matched, err := strategy(ctx, loginID, secret)
		if err != nil {
			return identity.Identity{}, err
		}
		if matched {
			return validated(id)
		}
	}
	return identity.Identity{}, auth.ErrInvalidCredentials
}

// clientPortal matches a client id and portal password. Client ids never
// contain an @, so email-shaped logins skip straight past this strategy.
func (r *CredentialResolverImpl) clientPortal(ctx context.Context, loginID, secret string) (identity.Identity, bool, error) {
	if strings.Contains(loginID, "@") {
		return identity.Identity{}, false, nil
	}
	c, err := r.clients.GetByPortalLogin(ctx, loginID, secret)
	if err == client.ErrClientNotFound {
		return identity.Identity{}, false, nil
	}
	if err != nil {
		return identity.Identity{}, false, fmt.Errorf("client strategy: %w", err)
	}
	if !c.PortalAccess {
		return identity.Identity{}, true, auth.ErrAccessDisabled
	}
	return c.Identity(), true, nil
}

// branchPortal matches a branch portal username and password.
func (r *CredentialResolverImpl) branchPortal(ctx context.Context, loginID, secret string) (identity.Identity, bool, error) {
	b, err := r.branches.GetByPortalLogin(ctx, loginID, secret)
	if err == branch.ErrBranchNotFound {
		return identity.Identity{}, false, nil
	}
	if err != nil {
		return identity.Identity{}, false, fmt.Errorf("branch strategy: %w", err)
	}
	return b.Identity(), true, nil
}

// staffDirectory matches a staff email or employee id plus password.
func (r *CredentialResolverImpl) staffDirectory(ctx context.Context, loginID, secret string) (identity.Identity, bool, error) {
	u, err := r.staff.GetByLogin(ctx, loginID, secret)
	if err == staffuser.ErrUserNotFound {
		return identity.Identity{}, false, nil
	}
	if err != nil {
		return identity.Identity{}, false, fmt.Errorf("staff strategy: %w", err)
	}
	return u.Identity(), true, nil
}

// providerFallback delegates email-shaped logins the directory does not know
// to the external provider. A provider match is an implicit Admin.
func (r *CredentialResolverImpl) providerFallback(ctx context.Context, loginID, secret string) (identity.Identity, bool, error) {
	if !strings.Contains(loginID, "@") {
		return identity.Identity{}, false, nil
	}
	user, err := r.provider.VerifyEmailPassword(ctx, loginID, secret)
	if err != nil {
		switch err {
		case authprovider.ErrUserDisabled:
			return identity.Identity{}, true, auth.ErrAccessDisabled
		case authprovider.ErrUserNotFound:
			return identity.Identity{}, false, nil
		}
		return identity.Identity{}, false, fmt.Errorf("provider strategy: %w", auth.ErrProviderError)
	}
	return identity.Identity{
		UID:         user.UID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        identity.RoleAdmin,
		Origin:      identity.OriginAdminFallback,
	}, true, nil
}

// ResolveByEmail implements auth.Resolver. Only the directory strategies are
// consulted: a provider-verified email proves possession of the mailbox, not
// membership, so the implicit-admin fallback never applies here.
func (r *CredentialResolverImpl) ResolveByEmail(ctx context.Context, email string) (identity.Identity, error) {
	c, err := r.clients.GetByEmail(ctx, email)
	if err == nil {
		if !c.PortalAccess {
			return identity.Identity{}, auth.ErrAccessDisabled
		}
		return validated(c.Identity())
	}
	if err != client.ErrClientNotFound {
		return identity.Identity{}, fmt.Errorf("client strategy: %w", err)
	}

	b, err := r.branches.GetByEmail(ctx, email)
	if err == nil {
		return validated(b.Identity())
	}
	if err != branch.ErrBranchNotFound {
		return identity.Identity{}, fmt.Errorf("branch strategy: %w", err)
	}

	u, err := r.staff.GetByEmail(ctx, email)
	if err == nil {
		return validated(u.Identity())
	}
	if err != staffuser.ErrUserNotFound {
		return identity.Identity{}, fmt.Errorf("staff strategy: %w", err)
	}

	return identity.Identity{}, auth.ErrInvalidCredentials
}

func validated(id identity.Identity) (identity.Identity, error) {
	if err := id.Validate(); err != nil {
		return identity.Identity{}, err
	}
	return id, nil
}
