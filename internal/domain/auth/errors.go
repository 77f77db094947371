package auth

import "errors"

var (
	// ErrInvalidCredentials is the single failure surfaced when no strategy
	// matched. Callers must not learn which strategy came closest.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccessDisabled means a client matched but its portal access is off.
	// The chain stops here; later strategies are never consulted.
	ErrAccessDisabled = errors.New("portal access is disabled for this account")

	// ErrProviderError covers OAuth and delegated-provider transport failures,
	// including a provider account with no email.
	ErrProviderError = errors.New("authentication provider error")

	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrRefreshTokenInvalid = errors.New("refresh token is invalid")
)
