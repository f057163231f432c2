package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itxparadoxarc-wq/educoreportal/app/config"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret-key-for-signing",
		JWTIssuer: "educoreportal",
		JWTTTL:    time.Hour,
	}
}

func TestJWTRoundTrip(t *testing.T) {
	cfg := testConfig()
	sessionID := uuid.New()

	token, err := GenerateJWT(cfg, sessionID, "user-1", "admin@school.test")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, sessionID.String(), claims.SessionID)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin@school.test", claims.Email)
	assert.Equal(t, cfg.JWTIssuer, claims.Issuer)
}

func TestJWTWrongSecretRejected(t *testing.T) {
	cfg := testConfig()
	token, err := GenerateJWT(cfg, uuid.New(), "user-1", "admin@school.test")
	require.NoError(t, err)

	other := testConfig()
	other.JWTSecret = "a-different-secret"
	_, err = ValidateJWT(other, token)
	assert.Error(t, err)
}

func TestJWTExpiryRejected(t *testing.T) {
	cfg := testConfig()
	cfg.JWTTTL = -time.Minute // already expired at issue time

	token, err := GenerateJWT(cfg, uuid.New(), "user-1", "admin@school.test")
	require.NoError(t, err)

	_, err = ValidateJWT(cfg, token)
	assert.Error(t, err)
}

func TestJWTGarbageRejected(t *testing.T) {
	_, err := ValidateJWT(testConfig(), "not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cure-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cure-pass", hash)

	assert.True(t, CheckPasswordHash("s3cure-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
	assert.False(t, CheckPasswordHash("s3cure-pass", "not-a-hash"))
}
