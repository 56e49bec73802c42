package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medtrace/medtrace-backend/internal/domain"
)

// RespondDomainError maps a service error onto the wire taxonomy. Anything
// outside the taxonomy is reported as a store error so raw driver text never
// becomes an error category.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		RespondError(c, http.StatusBadRequest, "validation_error", err)
	case errors.Is(err, domain.ErrDuplicateIdentity):
		RespondError(c, http.StatusConflict, "duplicate_identity", err)
	case errors.Is(err, domain.ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "invalid_credentials", err)
	case errors.Is(err, domain.ErrUnauthorizedRole):
		RespondError(c, http.StatusForbidden, "unauthorized_role", err)
	case errors.Is(err, domain.ErrReferenceNotFound):
		RespondError(c, http.StatusNotFound, "reference_not_found", err)
	case errors.Is(err, domain.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	default:
		RespondError(c, http.StatusInternalServerError, "store_error", err)
	}
}
