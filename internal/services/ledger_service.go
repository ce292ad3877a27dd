package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/laddalodge/booking-backend/internal/models"
	"github.com/laddalodge/booking-backend/pkg/validator"
)

// LedgerService owns the booking ledger. It is the only writer of Booking
// records and enforces every booking invariant itself: guest validation,
// blocked-date rejection, unit capacity, and pricing snapshots. Callers
// may pre-check availability for UX, but Create never trusts them to.
type LedgerService struct {
	rooms          RoomStore
	bookings       BookingStore
	availability   *AvailabilityService
	guestValidator *validator.GuestValidator
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(rooms RoomStore, bookings BookingStore, availability *AvailabilityService) *LedgerService {
	return &LedgerService{
		rooms:          rooms,
		bookings:       bookings,
		availability:   availability,
		guestValidator: validator.NewGuestValidator(),
	}
}

// Quote prices a proposed stay without creating anything. Reversed date
// ranges are rejected rather than silently normalized.
func (s *LedgerService) Quote(roomTypeID string, checkin, checkout time.Time, guestCount int) (*models.Quote, error) {
	if guestCount < 1 {
		return nil, &models.ValidationError{Field: "guest_count", Message: "guest count must be at least 1"}
	}
	if !checkout.After(checkin) {
		return nil, &models.ValidationError{Field: "checkout_date", Message: "checkout date must be after checkin date"}
	}

	room, err := s.rooms.Get(roomTypeID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, &models.ValidationError{Field: "room_type_id", Message: "unknown room type: " + roomTypeID}
	}
	if err != nil {
		return nil, err
	}

	nights := models.Nights(checkin, checkout)
	return &models.Quote{
		RoomTypeID:  room.TypeID,
		Nights:      nights,
		NightlyRate: room.NightlyRate,
		GuestCount:  guestCount,
		Total:       room.NightlyRate * float64(nights) * float64(guestCount),
	}, nil
}

// Create validates the submission, prices the stay, and appends a confirmed
// booking. The nightly rate and total are snapshots; later rate changes
// never touch this record.
func (s *LedgerService) Create(req *models.CreateBookingRequest) (*models.Booking, error) {
	if err := s.validateGuest(req); err != nil {
		return nil, err
	}

	checkin, err := models.ParseDate(req.CheckinDate)
	if err != nil {
		return nil, &models.ValidationError{Field: "checkin_date", Message: "invalid date, expected YYYY-MM-DD"}
	}
	checkout, err := models.ParseDate(req.CheckoutDate)
	if err != nil {
		return nil, &models.ValidationError{Field: "checkout_date", Message: "invalid date, expected YYYY-MM-DD"}
	}

	room, err := s.rooms.Get(req.RoomTypeID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, &models.ValidationError{Field: "room_type_id", Message: "unknown room type: " + req.RoomTypeID}
	}
	if err != nil {
		return nil, err
	}

	if req.GuestCount > room.MaxGuests {
		return nil, &models.ValidationError{Field: "guest_count", Message: "room sleeps at most " + strconv.Itoa(room.MaxGuests) + " guests"}
	}

	quote, err := s.Quote(req.RoomTypeID, checkin, checkout, req.GuestCount)
	if err != nil {
		return nil, err
	}

	blocked, err := s.availability.IsBlocked(checkin, checkout)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, &models.ValidationError{Field: "checkin_date", Message: "the selected dates are unavailable"}
	}

	taken, err := s.bookings.CountOverlapping(room.TypeID, checkin, checkout)
	if err != nil {
		return nil, err
	}
	if taken >= room.AvailableUnits {
		return nil, &models.ValidationError{Field: "room_type_id", Message: "no " + room.DisplayName + " units are available for those dates"}
	}

	booking := &models.Booking{
		BookingID:     models.NewBookingID(),
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Email:         strings.TrimSpace(strings.ToLower(req.Email)),
		Phone:         s.guestValidator.Sanitize(req.Phone),
		NationalID:    s.guestValidator.Sanitize(req.NationalID),
		Address:       strings.TrimSpace(req.Address),
		RoomTypeID:    room.TypeID,
		RoomTypeName:  room.DisplayName,
		CheckinDate:   checkin,
		CheckoutDate:  checkout,
		GuestCount:    req.GuestCount,
		Nights:        quote.Nights,
		NightlyRate:   quote.NightlyRate,
		TotalAmount:   quote.Total,
		PaymentMethod: req.PaymentMethod,
		Status:        models.BookingStatusConfirmed,
	}
	if trimmed := strings.TrimSpace(req.SpecialRequests); trimmed != "" {
		booking.SpecialRequests = &trimmed
	}

	if err := s.bookings.Insert(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// Cancel moves a booking to cancelled. Cancelling an already-cancelled
// booking is a no-op success.
func (s *LedgerService) Cancel(bookingID string) (*models.Booking, error) {
	booking, err := s.bookings.Get(bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.CanBeCancelled() {
		return booking, nil
	}

	booking.Cancel()
	if err := s.bookings.UpdateStatus(bookingID, booking.Status); err != nil {
		return nil, err
	}
	return booking, nil
}

// Delete permanently removes a booking from the ledger. Irreversible.
func (s *LedgerService) Delete(bookingID string) error {
	return s.bookings.Delete(bookingID)
}

// Find retrieves a booking by ID
func (s *LedgerService) Find(bookingID string) (*models.Booking, error) {
	return s.bookings.Get(bookingID)
}

// List returns bookings newest-first, narrowed by the filter
func (s *LedgerService) List(filter models.BookingFilter) ([]models.Booking, error) {
	return s.bookings.List(filter)
}

// CountOverlapping counts confirmed bookings of a room type whose stay
// overlaps the given window
func (s *LedgerService) CountOverlapping(roomTypeID string, checkin, checkout time.Time) (int, error) {
	return s.bookings.CountOverlapping(roomTypeID, checkin, checkout)
}

// TotalRevenue sums confirmed bookings' totals
func (s *LedgerService) TotalRevenue() (float64, error) {
	return s.bookings.TotalRevenue(models.BookingStatusConfirmed)
}

// CountByRoomType returns confirmed booking counts keyed by room type
func (s *LedgerService) CountByRoomType() (map[string]int, error) {
	return s.bookings.CountByRoomType()
}

// validateGuest checks presence and format of the required guest fields
func (s *LedgerService) validateGuest(req *models.CreateBookingRequest) error {
	if strings.TrimSpace(req.FirstName) == "" {
		return &models.ValidationError{Field: "first_name", Message: "first name is required"}
	}
	if strings.TrimSpace(req.LastName) == "" {
		return &models.ValidationError{Field: "last_name", Message: "last name is required"}
	}
	if strings.TrimSpace(req.Address) == "" {
		return &models.ValidationError{Field: "address", Message: "address is required"}
	}
	if strings.TrimSpace(req.PaymentMethod) == "" {
		return &models.ValidationError{Field: "payment_method", Message: "payment method is required"}
	}
	if _, err := s.guestValidator.ValidateEmail(req.Email); err != nil {
		return &models.ValidationError{Field: "email", Message: err.Error()}
	}
	if _, err := s.guestValidator.ValidatePhone(req.Phone); err != nil {
		return &models.ValidationError{Field: "phone", Message: err.Error()}
	}
	if _, err := s.guestValidator.ValidateNationalID(req.NationalID); err != nil {
		return &models.ValidationError{Field: "national_id", Message: err.Error()}
	}
	return nil
}
