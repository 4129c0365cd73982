package service

import (
	"database/sql"
	"errors"

	"mcq-platform/internal/domain"
)

// storeError passes domain errors (conflicts, validation) through and wraps
// anything else from the store as INTERNAL_ERROR.
func storeError(message string, err error) error {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	var validationErrs domain.ValidationErrors
	if errors.As(err, &validationErrs) {
		return err
	}
	return domain.NewInternalError(message, err)
}

// writeFailure is storeError for updates and deletes, where a missing row
// becomes NOT_FOUND.
func writeFailure(resource, id, message string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFoundError(resource, id)
	}
	return storeError(message, err)
}
