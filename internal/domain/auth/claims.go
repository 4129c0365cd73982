package auth

import (
	"mcq-platform/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT payload issued to an authenticated account.
// The subject claim mirrors AccountID.
type Claims struct {
	AccountID string      `json:"account_id"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Principal returns the identity carried by the claims.
func (c *Claims) Principal() domain.Principal {
	return domain.Principal{AccountID: c.AccountID, Email: c.Email, Role: c.Role}
}
