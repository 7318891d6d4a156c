package auth

import (
	"testing"
	"time"

	"bastion/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T, secret string, ttl time.Duration) *jwtService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = secret
	cfg.Auth = &config.AuthConfig{AccessTokenTTL: ttl}

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	cfg := &config.Config{}

	_, err := NewJWTService(cfg)

	require.Error(t, err)
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService(t, "access-secret", time.Minute)

	token, err := svc.GenerateAccessToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestJWTService_ValidateRejectsWrongSecret(t *testing.T) {
	issuer := newTestJWTService(t, "access-secret", time.Minute)
	verifier := newTestJWTService(t, "other-secret", time.Minute)

	token, err := issuer.GenerateAccessToken(42)
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestJWTService_ValidateRejectsExpired(t *testing.T) {
	svc := newTestJWTService(t, "access-secret", -time.Minute)

	token, err := svc.GenerateAccessToken(42)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestJWTService_ValidateRejectsGarbage(t *testing.T) {
	svc := newTestJWTService(t, "access-secret", time.Minute)

	_, err := svc.ValidateAccessToken("not.a.token")
	require.Error(t, err)
}

func TestJWTService_AccessTokenTTL(t *testing.T) {
	svc := newTestJWTService(t, "access-secret", 5*time.Minute)

	assert.Equal(t, 5*time.Minute, svc.AccessTokenTTL())
}
