package middleware

import (
	"errors"
	"strings"

	"mcq-platform/internal/domain"
	"mcq-platform/internal/domain/auth"
	"mcq-platform/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	PrincipalKey        = "principal" // Key for storing the domain.Principal in fiber.Ctx locals
)

// TokenVerifier validates an access token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Protected requires a valid bearer token and stores the caller's principal in locals.
func Protected(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return unauthorized(c, "MISSING_AUTH_HEADER", "Authorization header is missing")
		}

		// Trailing spaces are dropped by the transport, so "Bearer " arrives as "Bearer".
		scheme, token, _ := strings.Cut(strings.TrimSpace(authHeader), " ")
		if !strings.EqualFold(scheme, strings.TrimSpace(BearerSchema)) {
			return unauthorized(c, "INVALID_AUTH_SCHEME", "Authorization scheme is not Bearer")
		}

		tokenString := strings.TrimSpace(token)
		if tokenString == "" {
			return unauthorized(c, "EMPTY_TOKEN", "Token is empty")
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			logger.Get().Debug("Access token rejected", zap.String("path", c.Path()), zap.Error(err))
			if errors.Is(err, auth.ErrTokenExpired) {
				return unauthorized(c, "TOKEN_EXPIRED", "Token has expired")
			}
			return unauthorized(c, "INVALID_TOKEN", "Token is invalid")
		}

		c.Locals(PrincipalKey, claims.Principal())
		return c.Next()
	}
}

// RequireAdmin must run after Protected.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := GetPrincipal(c)
		if !ok {
			return unauthorized(c, "INVALID_USER_CONTEXT", "Principal not found in context")
		}
		if !p.IsAdmin() {
			return domain.NewForbiddenError("administrator role required")
		}
		return c.Next()
	}
}

// GetPrincipal returns the principal stored by Protected.
func GetPrincipal(c *fiber.Ctx) (domain.Principal, bool) {
	p, ok := c.Locals(PrincipalKey).(domain.Principal)
	if !ok || p.AccountID == "" {
		return domain.Principal{}, false
	}
	return p, true
}

func unauthorized(c *fiber.Ctx, code, message string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Code:    code,
		Message: message,
		Status:  fiber.StatusUnauthorized,
	})
}
