package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/laddalodge/booking-backend/internal/models"
	"github.com/laddalodge/booking-backend/internal/services"
)

// BlockedDateHandler handles blocked-date registry HTTP requests
type BlockedDateHandler struct {
	availability *services.AvailabilityService
	logger       *logrus.Logger
}

// NewBlockedDateHandler creates a new blocked date handler
func NewBlockedDateHandler(availability *services.AvailabilityService, logger *logrus.Logger) *BlockedDateHandler {
	return &BlockedDateHandler{
		availability: availability,
		logger:       logger,
	}
}

// List handles GET /api/v1/admin/blocked-dates
func (h *BlockedDateHandler) List(c *gin.Context) {
	ranges, err := h.availability.List()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list blocked dates")
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"blocked_dates": ranges, "count": len(ranges)})
}

// Create handles POST /api/v1/admin/blocked-dates
func (h *BlockedDateHandler) Create(c *gin.Context) {
	var req models.CreateBlockedDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	blocked, err := h.availability.Add(&req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"id":    blocked.ID,
		"start": blocked.StartDate.Format(models.DateLayout),
		"end":   blocked.EndDate.Format(models.DateLayout),
	}).Info("Blocked date range added")

	c.JSON(http.StatusCreated, blocked)
}

// Delete handles DELETE /api/v1/admin/blocked-dates/:id
func (h *BlockedDateHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.availability.Remove(id); err != nil {
		writeServiceError(c, err)
		return
	}

	h.logger.WithField("id", id).Info("Blocked date range removed")
	c.JSON(http.StatusOK, gin.H{"message": "Blocked date range removed"})
}
