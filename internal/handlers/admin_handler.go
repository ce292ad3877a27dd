package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/laddalodge/booking-backend/internal/models"
	"github.com/laddalodge/booking-backend/internal/services"
)

// AdminHandler handles back-office settings and dashboard requests
type AdminHandler struct {
	settings     services.SettingsStore
	rooms        services.RoomStore
	ledger       *services.LedgerService
	availability *services.AvailabilityService
	logger       *logrus.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(settings services.SettingsStore, rooms services.RoomStore, ledger *services.LedgerService, availability *services.AvailabilityService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		settings:     settings,
		rooms:        rooms,
		ledger:       ledger,
		availability: availability,
		logger:       logger,
	}
}

// GetSettings handles GET /api/v1/admin/settings
func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.settings.Get()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load settings")
		writeServiceError(c, err)
		return
	}

	rooms, err := h.rooms.List()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load room rates")
		writeServiceError(c, err)
		return
	}

	rates := make(map[string]float64, len(rooms))
	for i := range rooms {
		rates[rooms[i].TypeID] = rooms[i].NightlyRate
	}

	c.JSON(http.StatusOK, gin.H{
		"contact_phone": settings.ContactPhone,
		"contact_email": settings.ContactEmail,
		"updated_at":    settings.UpdatedAt,
		"room_rates":    rates,
	})
}

// SaveSettings handles PUT /api/v1/admin/settings.
// Rate changes apply to future quotes only; existing bookings keep their
// snapshot totals.
func (h *AdminHandler) SaveSettings(c *gin.Context) {
	var req models.SaveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	// validate every rate against its room before any store write; a bad
	// entry must not leave a half-applied rate sheet
	for typeID, rate := range req.RoomRates {
		room, err := h.rooms.Get(typeID)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		if err := room.UpdateRate(rate); err != nil {
			writeServiceError(c, err)
			return
		}
	}

	for typeID, rate := range req.RoomRates {
		if err := h.rooms.UpdateRate(typeID, rate); err != nil {
			writeServiceError(c, err)
			return
		}
	}

	settings := &models.AdminSettings{
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
	}
	if err := h.settings.Save(settings); err != nil {
		h.logger.WithError(err).Error("Failed to save settings")
		writeServiceError(c, err)
		return
	}

	admin, _ := currentAdmin(c)
	h.logger.WithFields(logrus.Fields{
		"admin":      admin,
		"room_rates": len(req.RoomRates),
	}).Info("Settings saved")

	c.JSON(http.StatusOK, settings)
}

// GetStats handles GET /api/v1/admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	all, err := h.ledger.List(models.BookingFilter{})
	if err != nil {
		h.logger.WithError(err).Error("Failed to load bookings for stats")
		writeServiceError(c, err)
		return
	}

	confirmed := 0
	cancelled := 0
	for i := range all {
		switch all[i].Status {
		case models.BookingStatusConfirmed:
			confirmed++
		case models.BookingStatusCancelled:
			cancelled++
		}
	}

	revenue, err := h.ledger.TotalRevenue()
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute revenue")
		writeServiceError(c, err)
		return
	}

	byRoomType, err := h.ledger.CountByRoomType()
	if err != nil {
		h.logger.WithError(err).Error("Failed to count bookings by room type")
		writeServiceError(c, err)
		return
	}

	blocked, err := h.availability.List()
	if err != nil {
		h.logger.WithError(err).Error("Failed to count blocked date ranges")
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_bookings":      len(all),
		"confirmed_bookings":  confirmed,
		"cancelled_bookings":  cancelled,
		"total_revenue":       revenue,
		"by_room_type":        byRoomType,
		"blocked_date_ranges": len(blocked),
	})
}
