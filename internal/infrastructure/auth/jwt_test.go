package auth

import (
	"testing"
	"time"

	"github.com/booktime/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-that-is-long-enough",
		AccessTokenExpiration: 1 * time.Hour,
		Issuer:                "booktime",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := newTestService()
	userID := uuid.New()

	token, expiresAt, err := service.GenerateToken(GenerateTokenInput{
		UserID: userID,
		Email:  "user2@booktime.domain",
		Staff:  true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(1*time.Hour), expiresAt, 5*time.Second)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "user2@booktime.domain", claims.Email)
	assert.True(t, claims.Staff)

	parsed, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestJWTService_ValidateToken_Errors(t *testing.T) {
	service := newTestService()

	t.Run("rejects garbage token", func(t *testing.T) {
		_, err := service.ValidateToken("not-a-token")
		assert.Equal(t, ErrInvalidToken, err)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                "a-completely-different-secret-key",
			AccessTokenExpiration: 1 * time.Hour,
			Issuer:                "booktime",
		})
		token, _, err := other.GenerateToken(GenerateTokenInput{
			UserID: uuid.New(),
			Email:  "user@booktime.domain",
		})
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.Equal(t, ErrInvalidToken, err)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := NewJWTService(config.JWTConfig{
			Secret:                "test-secret-key-that-is-long-enough",
			AccessTokenExpiration: -1 * time.Minute,
			Issuer:                "booktime",
		})
		token, _, err := expired.GenerateToken(GenerateTokenInput{
			UserID: uuid.New(),
			Email:  "user@booktime.domain",
		})
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.Equal(t, ErrExpiredToken, err)
	})
}
