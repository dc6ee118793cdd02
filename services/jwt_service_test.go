package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-services-server/config"
	"local-services-server/models"
)

func setupJWTConfig(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret",
			ExpiryHours: 1,
		},
	}
}

func TestJWTGenerateAndValidate(t *testing.T) {
	setupJWTConfig(t)
	db := newTestDB(t)
	svc := NewJWTService(db)
	user := createUser(t, db, models.RoleWorker)

	pair, err := svc.GenerateTokenPair(user, "test-agent", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, string(models.RoleWorker), claims.Role)
}

func TestJWTValidateRejectsGarbage(t *testing.T) {
	setupJWTConfig(t)
	db := newTestDB(t)
	svc := NewJWTService(db)

	_, err := svc.ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}

func TestJWTRefreshRotatesToken(t *testing.T) {
	setupJWTConfig(t)
	db := newTestDB(t)
	svc := NewJWTService(db)
	user := createUser(t, db, models.RoleCustomer)

	pair, err := svc.GenerateTokenPair(user, "test-agent", "127.0.0.1")
	require.NoError(t, err)

	next, err := svc.RefreshTokenPair(pair.RefreshToken, "test-agent", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// The old refresh token is revoked and cannot be replayed
	_, err = svc.RefreshTokenPair(pair.RefreshToken, "test-agent", "127.0.0.1")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestJWTRevokeUserTokens(t *testing.T) {
	setupJWTConfig(t)
	db := newTestDB(t)
	svc := NewJWTService(db)
	user := createUser(t, db, models.RoleCustomer)

	pair, err := svc.GenerateTokenPair(user, "test-agent", "127.0.0.1")
	require.NoError(t, err)

	require.NoError(t, svc.RevokeUserTokens(user.ID))

	_, err = svc.RefreshTokenPair(pair.RefreshToken, "test-agent", "127.0.0.1")
	assert.ErrorIs(t, err, ErrForbidden)
}
