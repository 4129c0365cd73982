package handler

import (
	"mcq-platform/internal/domain"
	"mcq-platform/internal/logger"
	"mcq-platform/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// principal returns the authenticated caller. Routes using it sit behind
// middleware.Protected, so a missing principal is a wiring fault.
func principal(c *fiber.Ctx) (domain.Principal, error) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		logger.Get().Warn("Principal not found in context", zap.String("path", c.Path()))
		return domain.Principal{}, domain.NewUnauthorizedError("authentication required", nil)
	}
	return p, nil
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		logger.Get().Debug("Failed to parse request body", zap.String("path", c.Path()), zap.Error(err))
		return domain.NewValidationError("request body is malformed")
	}
	return nil
}

// invalid turns field errors into a handler error, or nil when there are none.
func invalid(errs domain.ValidationErrors) error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}
