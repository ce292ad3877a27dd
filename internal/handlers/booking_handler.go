package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/laddalodge/booking-backend/internal/models"
	"github.com/laddalodge/booking-backend/internal/services"
)

// BookingHandler handles booking ledger HTTP requests
type BookingHandler struct {
	ledger        *services.LedgerService
	settings      services.SettingsStore
	notifications *services.NotificationService
	logger        *logrus.Logger
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(ledger *services.LedgerService, settings services.SettingsStore, notifications *services.NotificationService, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{
		ledger:        ledger,
		settings:      settings,
		notifications: notifications,
		logger:        logger,
	}
}

// Quote handles POST /api/v1/bookings/quote
func (h *BookingHandler) Quote(c *gin.Context) {
	var req models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	checkin, err := models.ParseDate(req.CheckinDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "checkin_date must be a valid YYYY-MM-DD date",
			Field:   "checkin_date",
		})
		return
	}

	checkout, err := models.ParseDate(req.CheckoutDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "checkout_date must be a valid YYYY-MM-DD date",
			Field:   "checkout_date",
		})
		return
	}

	quote, err := h.ledger.Quote(req.RoomTypeID, checkin, checkout, req.GuestCount)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

// Create handles POST /api/v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	booking, err := h.ledger.Create(&req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"booking_id": booking.BookingID,
		"room_type":  booking.RoomTypeID,
		"checkin":    booking.CheckinDate.Format(models.DateLayout),
		"total":      booking.TotalAmount,
	}).Info("Booking created")

	if settings, err := h.settings.Get(); err == nil {
		h.notifications.SendBookingConfirmation(booking, settings)
	}

	c.JSON(http.StatusCreated, booking)
}

// Get handles GET /api/v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	booking, err := h.ledger.Find(c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// ListByEmail handles GET /api/v1/bookings?email=
// Guests can look up their own bookings by the email they booked with.
func (h *BookingHandler) ListByEmail(c *gin.Context) {
	email := strings.TrimSpace(strings.ToLower(c.Query("email")))
	if email == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "email query parameter is required",
			Field:   "email",
		})
		return
	}

	bookings, err := h.ledger.List(models.BookingFilter{Search: email})
	if err != nil {
		h.logger.WithError(err).Error("Failed to list bookings by email")
		writeServiceError(c, err)
		return
	}

	// the search matches substrings; keep exact email matches only
	matched := make([]models.Booking, 0, len(bookings))
	for i := range bookings {
		if bookings[i].Email == email {
			matched = append(matched, bookings[i])
		}
	}

	c.JSON(http.StatusOK, gin.H{"bookings": matched, "count": len(matched)})
}

// Cancel handles POST /api/v1/bookings/:id/cancel
func (h *BookingHandler) Cancel(c *gin.Context) {
	booking, err := h.ledger.Cancel(c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	h.logger.WithField("booking_id", booking.BookingID).Info("Booking cancelled")

	if settings, err := h.settings.Get(); err == nil {
		h.notifications.SendCancellationNotice(booking, settings)
	}

	c.JSON(http.StatusOK, booking)
}

// AdminList handles GET /api/v1/admin/bookings
// Query params: search, status, from, to.
func (h *BookingHandler) AdminList(c *gin.Context) {
	filter := models.BookingFilter{
		Search: strings.TrimSpace(c.Query("search")),
	}

	if status := c.Query("status"); status != "" {
		s := models.BookingStatus(status)
		if s != models.BookingStatusConfirmed && s != models.BookingStatusCancelled {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "validation_error",
				Message: "status must be confirmed or cancelled",
				Field:   "status",
			})
			return
		}
		filter.Status = s
	}

	if from := c.Query("from"); from != "" {
		d, err := models.ParseDate(from)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "validation_error",
				Message: "from must be a valid YYYY-MM-DD date",
				Field:   "from",
			})
			return
		}
		filter.FromDate = &d
	}

	if to := c.Query("to"); to != "" {
		d, err := models.ParseDate(to)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "validation_error",
				Message: "to must be a valid YYYY-MM-DD date",
				Field:   "to",
			})
			return
		}
		filter.ToDate = &d
	}

	bookings, err := h.ledger.List(filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list bookings")
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

// AdminDelete handles DELETE /api/v1/admin/bookings/:id
func (h *BookingHandler) AdminDelete(c *gin.Context) {
	id := c.Param("id")
	if err := h.ledger.Delete(id); err != nil {
		writeServiceError(c, err)
		return
	}

	h.logger.WithField("booking_id", id).Info("Booking deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
}
