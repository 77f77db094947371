package auth

import (
	"context"

	"github.com/vedartha/erp-backend-go/internal/domain/identity"
)

// Resolver tries the ordered credential strategies and yields one identity or
// a typed failure. Strategy order is a correctness requirement: earlier
// strategies mask later ones.
type Resolver interface {
	// Resolve authenticates an interactive login id/secret pair.
	Resolve(ctx context.Context, loginID, secret string) (identity.Identity, error)
	// ResolveByEmail authenticates a provider-verified email (OAuth flows).
	// The delegated admin fallback is never consulted here.
	ResolveByEmail(ctx context.Context, email string) (identity.Identity, error)
}

// Service is the login surface used by the HTTP layer.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	// LoginWithGoogle resolves a provider-verified email; when nothing matches
	// it revokes the provider token so no half-authenticated session is left
	// behind.
	LoginWithGoogle(ctx context.Context, email, providerToken string, remember bool) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}
