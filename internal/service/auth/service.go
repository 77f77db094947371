package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2"

	"github.com/vedartha/erp-backend-go/internal/domain/auth"
	"github.com/vedartha/erp-backend-go/internal/domain/identity"
	"github.com/vedartha/erp-backend-go/internal/pkg/jwt"
	"github.com/vedartha/erp-backend-go/internal/pkg/oauth"
	"github.com/vedartha/erp-backend-go/internal/service/session"
)

type AuthServiceImpl struct {
	resolver auth.Resolver
	jwt      jwt.Service
	google   oauth.GoogleService
	sessions session.Service
}

func NewAuthService(resolver auth.Resolver, jwtService jwt.Service, googleService oauth.GoogleService, sessions session.Service) auth.Service {
	return &AuthServiceImpl{
		resolver: resolver,
		jwt:      jwtService,
		google:   googleService,
		sessions: sessions,
	}
}

// Login implements auth.Service.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	id, err := a.resolver.Resolve(ctx, req.LoginID, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) || errors.Is(err, auth.ErrAccessDisabled) {
			return auth.TokenResponse{}, err
		}
		slog.Error("Credential resolution failed", "error", err)
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, id, req.Remember)
}

// LoginWithGoogle implements auth.Service.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, email, providerToken string, remember bool) (auth.TokenResponse, error) {
	id, err := a.resolver.ResolveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			// No directory record maps to this Google account. Revoke the
			// provider token so the half-open provider session dies with
			// the attempt.
			if revokeErr := a.google.RevokeToken(ctx, &oauth2.Token{AccessToken: providerToken}); revokeErr != nil {
				slog.Warn("Provider token revocation failed", "error", revokeErr)
			}
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		if errors.Is(err, auth.ErrAccessDisabled) {
			return auth.TokenResponse{}, err
		}
		slog.Error("Email resolution failed", "error", err)
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, id, remember)
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, id identity.Identity, remember bool) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse
	var err error

	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.jwt.GenerateAccessToken(id)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.jwt.GenerateRefreshToken(id)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}
	tokenResponse.Identity = id

	if remember {
		// A failed snapshot write costs a re-login after restart, not the
		// login itself.
		if err := a.sessions.Persist(ctx, id); err != nil {
			slog.Warn("Session persist failed", "uid", id.UID, "error", err)
		}
	}

	return tokenResponse, nil
}

// RefreshToken implements auth.Service. The identity is re-resolved from the
// directory, so a record deleted or disabled since login invalidates the
// refresh token with it.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if a.jwt.IsTokenRevoked(req.RefreshToken) {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenInvalid
	}

	uid, origin, email, err := a.jwt.DecodeRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenInvalid
	}

	id, err := a.sessions.Revalidate(ctx, identity.Origin(origin), uid, email)
	if err != nil {
		slog.Info("Refresh revalidation failed", "uid", uid, "origin", origin, "error", err)
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenInvalid
	}

	accessToken, expiresIn, err := a.jwt.GenerateAccessToken(id)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return auth.AccessTokenResponse{AccessToken: accessToken, AccessTokenExpiresIn: expiresIn}, nil
}

// Logout implements auth.Service. Logout is the only path back to the
// unauthenticated state and always clears the persisted session.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken != "" {
		a.jwt.RevokeToken(refreshToken)
	}
	return a.sessions.Clear(ctx)
}
