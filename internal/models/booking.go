package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking represents a guest reservation. Pricing fields are snapshots
// taken at creation time; later rate changes never touch them.
type Booking struct {
	BookingID       string        `json:"booking_id" db:"booking_id"`
	FirstName       string        `json:"first_name" db:"first_name"`
	LastName        string        `json:"last_name" db:"last_name"`
	Email           string        `json:"email" db:"email"`
	Phone           string        `json:"phone" db:"phone"`
	NationalID      string        `json:"national_id" db:"national_id"`
	Address         string        `json:"address" db:"address"`
	RoomTypeID      string        `json:"room_type_id" db:"room_type_id"`
	RoomTypeName    string        `json:"room_type_name" db:"room_type_name"`
	CheckinDate     time.Time     `json:"checkin_date" db:"checkin_date"`
	CheckoutDate    time.Time     `json:"checkout_date" db:"checkout_date"`
	GuestCount      int           `json:"guest_count" db:"guest_count"`
	Nights          int           `json:"nights" db:"nights"`
	NightlyRate     float64       `json:"nightly_rate" db:"nightly_rate"`
	TotalAmount     float64       `json:"total_amount" db:"total_amount"`
	SpecialRequests *string       `json:"special_requests,omitempty" db:"special_requests"`
	PaymentMethod   string        `json:"payment_method" db:"payment_method"`
	Status          BookingStatus `json:"status" db:"status"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" db:"updated_at"`
}

// Quote is the computed price for a proposed stay
type Quote struct {
	RoomTypeID  string  `json:"room_type_id"`
	Nights      int     `json:"nights"`
	NightlyRate float64 `json:"nightly_rate"`
	GuestCount  int     `json:"guest_count"`
	Total       float64 `json:"total"`
}

// CreateBookingRequest is the detailed booking form submission
type CreateBookingRequest struct {
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Phone           string `json:"phone" binding:"required"`
	NationalID      string `json:"national_id" binding:"required"`
	Address         string `json:"address" binding:"required"`
	RoomTypeID      string `json:"room_type_id" binding:"required"`
	CheckinDate     string `json:"checkin_date" binding:"required"`
	CheckoutDate    string `json:"checkout_date" binding:"required"`
	GuestCount      int    `json:"guest_count" binding:"required,min=1"`
	SpecialRequests string `json:"special_requests,omitempty"`
	PaymentMethod   string `json:"payment_method" binding:"required"`
}

// QuoteRequest asks for a price without creating anything
type QuoteRequest struct {
	RoomTypeID   string `json:"room_type_id" binding:"required"`
	CheckinDate  string `json:"checkin_date" binding:"required"`
	CheckoutDate string `json:"checkout_date" binding:"required"`
	GuestCount   int    `json:"guest_count" binding:"required,min=1"`
}

// BookingFilter narrows admin booking listings
type BookingFilter struct {
	Search   string        // case-insensitive substring over name, email, room type name
	Status   BookingStatus // empty means any
	FromDate *time.Time    // check-in on or after
	ToDate   *time.Time    // check-in on or before
}

// Nights returns the whole-day length of a stay. Callers must have
// verified checkout > checkin first.
func Nights(checkin, checkout time.Time) int {
	return int(checkout.Sub(checkin).Hours() / 24)
}

// NewBookingID generates a ledger-unique booking reference. The format is
// the lodge prefix, a millisecond timestamp, and a random suffix; the only
// hard requirement is uniqueness, not unguessability.
func NewBookingID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:9]
	return fmt.Sprintf("LDD%d%s", time.Now().UnixMilli(), suffix)
}

// CanBeCancelled reports whether a cancel transition applies
func (b *Booking) CanBeCancelled() bool {
	return b.Status == BookingStatusConfirmed
}

// Cancel moves the booking to cancelled. Cancelling an already-cancelled
// booking is a no-op, not an error.
func (b *Booking) Cancel() {
	if !b.CanBeCancelled() {
		return
	}
	b.Status = BookingStatusCancelled
	b.UpdatedAt = time.Now()
}

// MatchesSearch reports whether the booking matches a guest-contact
// substring search
func (b *Booking) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	fullName := strings.ToLower(b.FirstName + " " + b.LastName)
	return strings.Contains(fullName, term) ||
		strings.Contains(strings.ToLower(b.Email), term) ||
		strings.Contains(strings.ToLower(b.RoomTypeName), term)
}
