// internal/handlers/common.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/shopnest/shopnest-backend/internal/authz"
	"github.com/shopnest/shopnest-backend/internal/services"
	"github.com/shopnest/shopnest-backend/internal/utils"
)

// parseIDParam reads the :id path parameter. A malformed id has already
// responded by the time ok is false.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

// respondServiceError maps service error kinds onto HTTP statuses. The
// unauthenticated/forbidden distinction is deliberate: 401 asks for
// credentials, 403 refuses them.
func respondServiceError(c *gin.Context, err error, resource string) {
	var stockErr *services.InsufficientStockError
	var internalErr *services.InternalError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &internalErr):
		// Database and storage faults respond with a generic 500; the
		// wrapped detail stays server-side.
		utils.InternalErrorResponse(c, "")
	case errors.Is(err, authz.ErrUnauthenticated):
		utils.UnauthorizedResponse(c, "")
	case errors.Is(err, authz.ErrForbidden):
		utils.ForbiddenResponse(c, "")
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, resource)
	case errors.As(err, &stockErr):
		utils.ConflictResponse(c, stockErr.Error(), gin.H{
			"requested": stockErr.Requested,
			"available": stockErr.Available,
		})
	case errors.As(err, &validationErrs):
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(validationErrs))
	case errors.Is(err, authz.ErrOwnerMismatch):
		utils.ErrorResponse(c, 400, "VALIDATION_ERROR", err.Error(), nil)
	default:
		utils.BadRequestResponse(c, err.Error(), nil)
	}
}
