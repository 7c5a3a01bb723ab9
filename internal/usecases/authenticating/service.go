package authenticating

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Authenticator valida os tokens emitidos pelo backend hospedado.
// A emissão não acontece neste serviço.
type Authenticator interface {
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	secret []byte
}

func NewService(secret string) Authenticator {
	return &Service{secret: []byte(secret)}
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Role == "" {
		return nil, fmt.Errorf("%w: role ausente", ErrInvalidToken)
	}

	return claims, nil
}

// HasRole verifica se as claims possuem um dos roles permitidos
func HasRole(claims *domain.Claims, allowed ...string) bool {
	if claims == nil {
		return false
	}

	for _, role := range allowed {
		if claims.Role == role {
			return true
		}
	}
	return false
}
