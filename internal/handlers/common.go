// internal/handlers/common.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nurgarden/ngms-backend/internal/services"
	"github.com/nurgarden/ngms-backend/internal/utils"
)

// respondServiceError maps the service error taxonomy onto the response
// envelope. Validation errors are 400, not-found 404, everything else 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case services.IsValidationError(err):
		utils.BadRequestResponse(c, err.Error(), nil)
	case services.IsNotFound(err):
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, err.Error())
	default:
		utils.InternalErrorResponse(c, "")
	}
}

// parseIDParam reads a path parameter as a UUID, responding 400 itself on
// failure.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}
