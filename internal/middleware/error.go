package middleware

import (
	"errors"
	"net/http"

	"mcq-platform/internal/domain"
	"mcq-platform/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Status  int                    `json:"status"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ValidationErrorResponse lists every rejected field of a request.
type ValidationErrorResponse struct {
	Code    string                   `json:"code"`
	Message string                   `json:"message"`
	Status  int                      `json:"status"`
	Errors  []domain.ValidationError `json:"errors"`
}

// statusByCode is the boundary table for domain failure kinds. Codes that are
// not listed are internal failures.
var statusByCode = map[domain.ErrorCode]int{
	domain.CodeNotFound:      http.StatusNotFound,
	domain.CodeUnauthorized:  http.StatusUnauthorized,
	domain.CodeForbidden:     http.StatusForbidden,
	domain.CodeValidation:    http.StatusBadRequest,
	domain.CodeMissingField:  http.StatusBadRequest,
	domain.CodeInvalidFormat: http.StatusBadRequest,
	domain.CodeOutOfRange:    http.StatusBadRequest,
	domain.CodeConflict:      http.StatusBadRequest,
}

// StatusFor returns the HTTP status a domain error code is reported with.
func StatusFor(code domain.ErrorCode) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrorHandler renders errors returned by handlers. It is installed as the
// Fiber ErrorHandler so RequestLogger sees the final status.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get().With(zap.String("path", c.Path()), zap.String("requestID", RequestIDFrom(c)))

		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			log.Info("Request rejected", zap.Int("fieldErrors", len(validationErrs)))
			return c.Status(http.StatusBadRequest).JSON(ValidationErrorResponse{
				Code:    string(domain.CodeValidation),
				Message: "Request validation failed",
				Status:  http.StatusBadRequest,
				Errors:  validationErrs,
			})
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return writeDomainError(c, log, domainErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			log.Warn("Transport error", zap.Int("status", fiberErr.Code), zap.String("message", fiberErr.Message))
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Code:    "HTTP_ERROR",
				Message: fiberErr.Message,
				Status:  fiberErr.Code,
			})
		}

		log.Error("Unhandled error", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    string(domain.CodeInternal),
			Message: "Internal server error",
			Status:  http.StatusInternalServerError,
		})
	}
}

func writeDomainError(c *fiber.Ctx, log *zap.Logger, domainErr *domain.DomainError) error {
	status := StatusFor(domainErr.Code)
	internal := status >= http.StatusInternalServerError

	fields := []zap.Field{
		zap.String("code", string(domainErr.Code)),
		zap.String("message", domainErr.Message),
		zap.Int("status", status),
	}
	if domainErr.Cause != nil {
		fields = append(fields, zap.Error(domainErr.Cause))
	}
	if internal {
		log.Error("Request failed", fields...)
	} else {
		log.Info("Request refused", fields...)
	}

	resp := ErrorResponse{
		Code:    string(domainErr.Code),
		Message: domainErr.Message,
		Status:  status,
	}
	// Context of internal failures stays in the log.
	if !internal && len(domainErr.Context) > 0 {
		resp.Details = domainErr.Context
	}
	return c.Status(status).JSON(resp)
}
