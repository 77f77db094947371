package authprovider

import (
	"context"
	"errors"
)

// ErrUserNotFound is returned when the provider holds no account for the
// given credentials or email.
var ErrUserNotFound = errors.New("provider user not found")

// ErrUserDisabled is returned when the provider account exists but has been
// disabled by an administrator.
var ErrUserDisabled = errors.New("provider user disabled")

// User is the provider-side view of an account.
type User struct {
	UID         string
	Email       string
	DisplayName string
	Disabled    bool
}

// Provider is the delegated credential authority behind the admin fallback.
// Verification is fully delegated: no password material is read or stored
// locally, success or failure comes back from the provider as a whole.
type Provider interface {
	// VerifyEmailPassword checks the credentials against the provider and
	// returns the account on success. Wrong credentials and unknown emails
	// both map to ErrUserNotFound.
	VerifyEmailPassword(ctx context.Context, email, password string) (User, error)

	// GetUserByEmail looks up an account without verifying credentials.
	// Session restore uses it to confirm the account still exists and is
	// not disabled.
	GetUserByEmail(ctx context.Context, email string) (User, error)
}
