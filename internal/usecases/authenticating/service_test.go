package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, secret string, claims domain.Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims(role string) domain.Claims {
	return domain.Claims{
		Email: "ana@example.com",
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestValidateToken(t *testing.T) {
	service := NewService(testSecret)

	t.Run("token válido", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, testSecret, validClaims(domain.RoleAuthenticated))

		claims, err := service.ValidateToken(token)

		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID())
		assert.Equal(t, domain.RoleAuthenticated, claims.Role)
		assert.Equal(t, "ana@example.com", claims.Email)
	})

	t.Run("token ausente", func(t *testing.T) {
		_, err := service.ValidateToken("")

		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("segredo errado", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, "outro", validClaims(domain.RoleAuthenticated))

		_, err := service.ValidateToken(token)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("algoritmo diferente de HS256", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS512, testSecret, validClaims(domain.RoleAuthenticated))

		_, err := service.ValidateToken(token)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token expirado", func(t *testing.T) {
		claims := validClaims(domain.RoleAuthenticated)
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		token := signToken(t, jwt.SigningMethodHS256, testSecret, claims)

		_, err := service.ValidateToken(token)

		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("sem role", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, testSecret, validClaims(""))

		_, err := service.ValidateToken(token)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("lixo", func(t *testing.T) {
		_, err := service.ValidateToken("not-a-jwt")

		assert.True(t, IsAuthorizationError(err))
	})
}

func TestHasRole(t *testing.T) {
	claims := &domain.Claims{Role: domain.RoleServiceRole}

	assert.True(t, HasRole(claims, domain.RoleAuthenticated, domain.RoleServiceRole))
	assert.False(t, HasRole(claims, domain.RoleAuthenticated))
	assert.False(t, HasRole(nil, domain.RoleServiceRole))
}
