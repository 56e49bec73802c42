package services

import (
	"fmt"

	"github.com/medtrace/medtrace-backend/internal/domain"
)

// storeErr tags an underlying transaction failure so handlers report it as a
// store error without leaking the raw driver error as a category.
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStore, op, err)
}

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, fmt.Sprintf(format, args...))
}
