package auth

import (
	"strings"

	"github.com/vedartha/erp-backend-go/internal/domain/identity"
)

type LoginRequest struct {
	// LoginID carries a client id, a branch portal username, a staff email or
	// an employee id; which one is decided by the strategy chain, not the
	// caller.
	LoginID  string `json:"login_id"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

func (r *LoginRequest) Validate() error {
	r.LoginID = strings.TrimSpace(r.LoginID)
	r.Password = strings.TrimSpace(r.Password)
	if r.LoginID == "" || r.Password == "" {
		return ErrInvalidCredentials
	}
	return nil
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken           string            `json:"access_token"`
	AccessTokenExpiresIn  int64             `json:"access_token_expires_in"`
	RefreshToken          string            `json:"refresh_token"`
	RefreshTokenExpiresIn int64             `json:"refresh_token_expires_in"`
	Identity              identity.Identity `json:"identity"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
}
