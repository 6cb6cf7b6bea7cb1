package auth

import (
	"testing"
	"time"

	"github.com/bricksflow/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "bricksflow-test",
		MaxRefreshCount:        2,
	})
}

func TestNewJWTService_UsesSecretForRefreshIfNotProvided(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "only-secret"})
	assert.Equal(t, []byte("only-secret"), svc.refreshSecret)
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(userID, "owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)

	got, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	t.Run("refresh token is not an access token", func(t *testing.T) {
		_, err := svc.ValidateAccessToken(pair.RefreshToken)
		assert.Error(t, err)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		_, err := svc.ValidateRefreshToken(pair.AccessToken)
		assert.Error(t, err)
	})

	t.Run("tampered token is rejected", func(t *testing.T) {
		_, err := svc.ValidateAccessToken(pair.AccessToken + "x")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestJWTService_Expiry(t *testing.T) {
	svc := newTestJWTService()
	issuedAt := time.Now()
	svc.now = func() time.Time { return issuedAt }

	pair, err := svc.GenerateTokenPair(uuid.New(), "a@b.co")
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(time.Hour) }
	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)

	_, err = svc.ValidateRefreshToken(pair.RefreshToken)
	assert.NoError(t, err)
}

func TestJWTService_RefreshTokenPair(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(userID, "a@b.co")
	require.NoError(t, err)

	second, err := svc.RefreshTokenPair(pair.RefreshToken)
	require.NoError(t, err)
	claims, err := svc.ValidateRefreshToken(second.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.RefreshCount)
	assert.Equal(t, userID.String(), claims.UserID)

	third, err := svc.RefreshTokenPair(second.RefreshToken)
	require.NoError(t, err)

	_, err = svc.RefreshTokenPair(third.RefreshToken)
	assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
}

func TestClaims_RemainingTTL(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(uuid.New(), "")
	require.NoError(t, err)
	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	now := time.Now()
	ttl := claims.RemainingTTL(now)
	assert.True(t, ttl > 14*time.Minute && ttl <= 15*time.Minute)
	assert.Zero(t, claims.RemainingTTL(now.Add(time.Hour)))
}
