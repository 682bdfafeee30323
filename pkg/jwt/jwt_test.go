package jwt

import (
	"testing"
	"time"

	"pulse-backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		ExpireTime:    time.Hour,
		RefreshExpire: 24 * time.Hour,
		Issuer:        "pulse-test",
	})
}

func TestGenerateTokenPair_RoundTrip(t *testing.T) {
	svc := newTestService()

	access, refresh, err := svc.GenerateTokenPair(42, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)

	claims, err = svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
}

func TestGenerateTokenPair_RequiresUserID(t *testing.T) {
	svc := newTestService()

	_, _, err := svc.GenerateTokenPair(0, "alice")
	assert.Error(t, err)
}

func TestValidateToken_Rejections(t *testing.T) {
	svc := newTestService()

	_, err := svc.ValidateToken("")
	assert.Error(t, err)

	_, err = svc.ValidateToken("not.a.token")
	assert.Error(t, err)

	// A token signed with a different secret must fail.
	other := NewJWTService(config.JWTConfig{
		Secret:     "other-secret",
		ExpireTime: time.Hour,
		Issuer:     "pulse-test",
	})
	access, _, err := other.GenerateTokenPair(1, "alice")
	require.NoError(t, err)
	_, err = svc.ValidateToken(access)
	assert.Error(t, err)

	// A token from a different issuer must fail.
	foreign := NewJWTService(config.JWTConfig{
		Secret:     "test-secret",
		ExpireTime: time.Hour,
		Issuer:     "someone-else",
	})
	access, _, err = foreign.GenerateTokenPair(1, "alice")
	require.NoError(t, err)
	_, err = svc.ValidateToken(access)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:     "test-secret",
		ExpireTime: -time.Minute,
		Issuer:     "pulse-test",
	})

	access, _, err := svc.GenerateTokenPair(1, "alice")
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.Error(t, err)
}
