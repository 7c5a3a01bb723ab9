package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAuthenticated = "authenticated"
	RoleServiceRole   = "service_role"
)

// Claims são as claims do JWT emitido pelo backend hospedado
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// UserID retorna o subject do token
func (c *Claims) UserID() string {
	return c.Subject
}
