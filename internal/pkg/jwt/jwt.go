package jwt

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/vedartha/erp-backend-go/internal/domain/identity"
)

type Service interface {
	GenerateAccessToken(id identity.Identity) (token string, expiresAt int64, err error)
	GenerateRefreshToken(id identity.Identity) (token string, expiresAt int64, err error)
	DecodeRefreshToken(tokenString string) (uid string, origin string, email string, err error)
	GenerateSSEToken(uid string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (uid string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
	IdentityFromClaims(claims map[string]interface{}) (identity.Identity, error)
}

type JWTService struct {
	secretKey                  string
	accessTokenExpirationTime  string
	refreshTokenExpirationTime string
	tokenAuth                  *jwtauth.JWTAuth
	revokedTokens              map[string]int64
	mu                         sync.RWMutex
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, refreshTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                  secretKey,
		accessTokenExpirationTime:  accessTokenExpirationTime,
		refreshTokenExpirationTime: refreshTokenExpirationTime,
		tokenAuth:                  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:              make(map[string]int64),
	}
}

func (j *JWTService) GenerateAccessToken(id identity.Identity) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"uid":    id.UID,
		"email":  id.Email,
		"name":   id.DisplayName,
		"role":   string(id.Role),
		"origin": string(id.Origin),
		"type":   "access",
		"exp":    expiresAt,
	}
	if len(id.AllowedBranchIDs) > 0 {
		claims["branches"] = strings.Join(id.AllowedBranchIDs, ",")
	}
	if id.ClientID != "" {
		claims["client_id"] = id.ClientID
	}
	if id.EmployeeID != "" {
		claims["employee_id"] = id.EmployeeID
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// IdentityFromClaims rebuilds the identity embedded in an access token.
// Middleware uses it so handlers never re-query the directory per request.
func (j *JWTService) IdentityFromClaims(claims map[string]interface{}) (identity.Identity, error) {
	if claims["type"] != "access" {
		return identity.Identity{}, jwt.ErrInvalidJWT()
	}
	id := identity.Identity{
		UID:         stringClaim(claims, "uid"),
		Email:       stringClaim(claims, "email"),
		DisplayName: stringClaim(claims, "name"),
		Role:        identity.Role(stringClaim(claims, "role")),
		Origin:      identity.Origin(stringClaim(claims, "origin")),
		ClientID:    stringClaim(claims, "client_id"),
		EmployeeID:  stringClaim(claims, "employee_id"),
	}
	if branches := stringClaim(claims, "branches"); branches != "" {
		id.AllowedBranchIDs = strings.Split(branches, ",")
	}
	if err := id.Validate(); err != nil {
		return identity.Identity{}, err
	}
	return id, nil
}

func stringClaim(claims map[string]interface{}, key string) string {
	v, _ := claims[key].(string)
	return v
}

// GenerateRefreshToken carries just enough of the identity to re-resolve it
// against the directory on refresh. The full identity is never trusted from
// a refresh token.
func (j *JWTService) GenerateRefreshToken(id identity.Identity) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.refreshTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"uid":    id.UID,
		"origin": string(id.Origin),
		"email":  id.Email,
		"exp":    expiresAt,
		"type":   "refresh",
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) DecodeRefreshToken(tokenString string) (uid string, origin string, email string, err error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", "", "", err
	}
	if tokenType, ok := token.Get("type"); !ok || tokenType != "refresh" {
		return "", "", "", jwt.ErrInvalidJWT()
	}
	claims, err := token.AsMap(context.Background())
	if err != nil {
		return "", "", "", err
	}
	uid = stringClaim(claims, "uid")
	origin = stringClaim(claims, "origin")
	email = stringClaim(claims, "email")
	if uid == "" || origin == "" {
		return "", "", "", jwt.ErrInvalidJWT()
	}
	return uid, origin, email, nil
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
	}
}

func (j *JWTService) RevokeToken(token string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[token] = time.Now().Unix()
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

// GenerateSSEToken generates a short-lived token for SSE connections
func (j *JWTService) GenerateSSEToken(uid string) (token string, expiresIn int, err error) {
	// SSE tokens are short-lived (5 minutes)
	expiresIn = 300
	expiresAt := time.Now().Add(5 * time.Minute).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"uid":  uid,
		"type": "sse",
		"exp":  expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresIn, nil
}

// ValidateSSEToken validates an SSE token and returns the user ID
func (j *JWTService) ValidateSSEToken(tokenString string) (uid string, err error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "sse" {
		return "", jwt.ErrInvalidJWT()
	}

	uidVal, ok := token.Get("uid")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	uid, ok = uidVal.(string)
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	return uid, nil
}
