package services

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/laddalodge/booking-backend/internal/models"
	"github.com/laddalodge/booking-backend/pkg/mailer"
)

// NotificationService composes and sends guest-facing email. Delivery
// failures are logged and swallowed; a booking must never fail because the
// mail provider is down.
type NotificationService struct {
	gateway mailer.Gateway
	logger  *logrus.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(gateway mailer.Gateway, logger *logrus.Logger) *NotificationService {
	return &NotificationService{gateway: gateway, logger: logger}
}

// SendBookingConfirmation emails the guest their booking summary
func (s *NotificationService) SendBookingConfirmation(booking *models.Booking, settings *models.AdminSettings) {
	msg := mailer.Message{
		To:      booking.Email,
		Subject: fmt.Sprintf("Booking confirmed - %s", booking.BookingID),
		Body:    confirmationBody(booking, settings),
	}

	id, err := s.gateway.Send(msg)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"booking_id": booking.BookingID,
			"gateway":    s.gateway.GetName(),
			"error":      err.Error(),
		}).Error("Failed to send booking confirmation")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": booking.BookingID,
		"message_id": id,
	}).Info("Booking confirmation sent")
}

// SendCancellationNotice emails the guest that their booking was cancelled
func (s *NotificationService) SendCancellationNotice(booking *models.Booking, settings *models.AdminSettings) {
	body := fmt.Sprintf(
		"Dear %s %s,\n\nYour booking %s for the %s (%s to %s) has been cancelled.\n\nIf this was a mistake, please contact us on %s.\n\nLa D Da Lodge",
		booking.FirstName, booking.LastName,
		booking.BookingID, booking.RoomTypeName,
		booking.CheckinDate.Format(models.DateLayout),
		booking.CheckoutDate.Format(models.DateLayout),
		settings.ContactPhone,
	)

	msg := mailer.Message{
		To:      booking.Email,
		Subject: fmt.Sprintf("Booking cancelled - %s", booking.BookingID),
		Body:    body,
	}

	if _, err := s.gateway.Send(msg); err != nil {
		s.logger.WithFields(logrus.Fields{
			"booking_id": booking.BookingID,
			"error":      err.Error(),
		}).Error("Failed to send cancellation notice")
	}
}

func confirmationBody(booking *models.Booking, settings *models.AdminSettings) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Dear %s %s,\n\n", booking.FirstName, booking.LastName)
	fmt.Fprintf(&b, "Thank you for booking with La D Da Lodge. Your reference is %s.\n\n", booking.BookingID)
	fmt.Fprintf(&b, "Room: %s\n", booking.RoomTypeName)
	fmt.Fprintf(&b, "Check-in: %s\n", booking.CheckinDate.Format(models.DateLayout))
	fmt.Fprintf(&b, "Check-out: %s\n", booking.CheckoutDate.Format(models.DateLayout))
	fmt.Fprintf(&b, "Guests: %d\n", booking.GuestCount)
	fmt.Fprintf(&b, "Nights: %d\n", booking.Nights)
	fmt.Fprintf(&b, "Total: R%.2f (R%.2f per person per night)\n\n", booking.TotalAmount, booking.NightlyRate)
	if booking.SpecialRequests != nil {
		fmt.Fprintf(&b, "Special requests: %s\n\n", *booking.SpecialRequests)
	}
	fmt.Fprintf(&b, "Questions? Call %s or reply to %s.\n\nLa D Da Lodge", settings.ContactPhone, settings.ContactEmail)

	return b.String()
}
