package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/laddalodge/booking-backend/internal/models"
	"github.com/laddalodge/booking-backend/internal/services"
)

// RoomHandler handles room catalog HTTP requests
type RoomHandler struct {
	rooms        services.RoomStore
	ledger       *services.LedgerService
	availability *services.AvailabilityService
	logger       *logrus.Logger
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(rooms services.RoomStore, ledger *services.LedgerService, availability *services.AvailabilityService, logger *logrus.Logger) *RoomHandler {
	return &RoomHandler{
		rooms:        rooms,
		ledger:       ledger,
		availability: availability,
		logger:       logger,
	}
}

// ListRooms handles GET /api/v1/rooms
func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms, err := h.rooms.List()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list rooms")
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// GetRoom handles GET /api/v1/rooms/:type_id
func (h *RoomHandler) GetRoom(c *gin.Context) {
	room, err := h.rooms.Get(c.Param("type_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, room)
}

// CheckAvailability handles GET /api/v1/availability.
// Query params: checkin, checkout (YYYY-MM-DD, required), room_type_id
// (optional). With a room type it also reports whether a unit is free for
// those dates; without one it only reports the blocked-date verdict.
func (h *RoomHandler) CheckAvailability(c *gin.Context) {
	checkin, err := models.ParseDate(c.Query("checkin"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "checkin must be a valid YYYY-MM-DD date",
			Field:   "checkin",
		})
		return
	}

	checkout, err := models.ParseDate(c.Query("checkout"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "checkout must be a valid YYYY-MM-DD date",
			Field:   "checkout",
		})
		return
	}

	if !checkout.After(checkin) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "checkout must be after checkin",
			Field:   "checkout",
		})
		return
	}

	blocked, err := h.availability.IsBlocked(checkin, checkout)
	if err != nil {
		h.logger.WithError(err).Error("Failed to check blocked dates")
		writeServiceError(c, err)
		return
	}

	resp := gin.H{
		"checkin":   c.Query("checkin"),
		"checkout":  c.Query("checkout"),
		"blocked":   blocked,
		"available": !blocked,
	}

	if roomTypeID := c.Query("room_type_id"); roomTypeID != "" && !blocked {
		room, err := h.rooms.Get(roomTypeID)
		if err != nil {
			writeServiceError(c, err)
			return
		}

		taken, err := h.ledger.CountOverlapping(roomTypeID, checkin, checkout)
		if err != nil {
			h.logger.WithError(err).Error("Failed to count overlapping bookings")
			writeServiceError(c, err)
			return
		}

		unitsFree := room.AvailableUnits - taken
		if unitsFree < 0 {
			unitsFree = 0
		}
		resp["room_type_id"] = roomTypeID
		resp["units_free"] = unitsFree
		resp["available"] = unitsFree > 0
	}

	c.JSON(http.StatusOK, resp)
}
