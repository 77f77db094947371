package jwt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedartha/erp-backend-go/internal/domain/identity"
)

const (
	testSecret     = "test-secret-key-for-jwt"
	testAccessExp  = "1h"
	testRefreshExp = "24h"
)

func newTestService() Service {
	return NewJWTService(testSecret, testAccessExp, testRefreshExp)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	svc := newTestService()
	id := identity.Identity{
		UID:              "uid-1",
		Email:            "meera@vedartha.example",
		DisplayName:      "Meera",
		Role:             identity.RoleAccountant,
		Origin:           identity.OriginStaff,
		AllowedBranchIDs: []string{"branch-blr", "branch-del"},
	}

	tokenString, expiresAt, err := svc.GenerateAccessToken(id)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, int64(0))

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)
	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)

	decoded, err := svc.IdentityFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, id, decoded)
}

func TestAccessToken_ClientIdentity(t *testing.T) {
	svc := newTestService()
	id := identity.Identity{
		UID:      "acme",
		Email:    "accounts@acme.example",
		Role:     identity.RoleClient,
		Origin:   identity.OriginClient,
		ClientID: "acme",
	}

	tokenString, _, err := svc.GenerateAccessToken(id)
	require.NoError(t, err)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)
	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)

	decoded, err := svc.IdentityFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "acme", decoded.ClientID)
	assert.Empty(t, decoded.AllowedBranchIDs)
}

func TestIdentityFromClaims_RejectsNonAccessTokens(t *testing.T) {
	svc := newTestService()
	id := identity.Identity{UID: "uid-1", Role: identity.RoleAdmin, Origin: identity.OriginStaff}

	refresh, _, err := svc.GenerateRefreshToken(id)
	require.NoError(t, err)

	token, err := svc.JWTAuth().Decode(refresh)
	require.NoError(t, err)
	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)

	_, err = svc.IdentityFromClaims(claims)
	assert.Error(t, err)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	svc := newTestService()
	id := identity.Identity{
		UID:    "uid-1",
		Email:  "meera@vedartha.example",
		Role:   identity.RoleAccountant,
		Origin: identity.OriginStaff,
	}

	tokenString, _, err := svc.GenerateRefreshToken(id)
	require.NoError(t, err)

	uid, origin, email, err := svc.DecodeRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", uid)
	assert.Equal(t, string(identity.OriginStaff), origin)
	assert.Equal(t, "meera@vedartha.example", email)
}

func TestDecodeRefreshToken_RejectsAccessTokens(t *testing.T) {
	svc := newTestService()
	id := identity.Identity{UID: "uid-1", Role: identity.RoleAdmin, Origin: identity.OriginStaff}

	access, _, err := svc.GenerateAccessToken(id)
	require.NoError(t, err)

	_, _, _, err = svc.DecodeRefreshToken(access)
	assert.Error(t, err)
}

func TestSSEToken_RoundTrip(t *testing.T) {
	svc := newTestService()

	tokenString, expiresIn, err := svc.GenerateSSEToken("uid-1")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	uid, err := svc.ValidateSSEToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", uid)
}

func TestValidateSSEToken_RejectsOtherTypes(t *testing.T) {
	svc := newTestService()
	id := identity.Identity{UID: "uid-1", Role: identity.RoleAdmin, Origin: identity.OriginStaff}

	access, _, err := svc.GenerateAccessToken(id)
	require.NoError(t, err)

	_, err = svc.ValidateSSEToken(access)
	assert.Error(t, err)
}

func TestTokenRevocation(t *testing.T) {
	svc := newTestService()
	id := identity.Identity{UID: "uid-1", Role: identity.RoleAdmin, Origin: identity.OriginStaff}

	refresh, _, err := svc.GenerateRefreshToken(id)
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(refresh))
	svc.RevokeToken(refresh)
	assert.True(t, svc.IsTokenRevoked(refresh))
}
