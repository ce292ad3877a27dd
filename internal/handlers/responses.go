package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/laddalodge/booking-backend/internal/middleware"
	"github.com/laddalodge/booking-backend/internal/models"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// writeServiceError maps engine errors onto HTTP responses. Validation
// failures are 400, missing records 404, everything else 500.
func writeServiceError(c *gin.Context, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: verr.Message,
			Field:   verr.Field,
		})
		return
	}

	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "The requested resource does not exist",
		})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "Something went wrong, please try again",
	})
}

// currentAdmin returns the authenticated admin's username for audit logs
func currentAdmin(c *gin.Context) (string, bool) {
	adminCtx, exists := middleware.GetAdminContext(c)
	if !exists {
		return "", false
	}
	return adminCtx.Username, true
}
