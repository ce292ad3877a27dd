package services

import (
	"time"

	"github.com/laddalodge/booking-backend/internal/models"
)

// The engine is constructed against these store interfaces rather than a
// concrete database, so the Postgres repositories and the in-memory store
// are interchangeable.

// RoomStore is the persistence contract for the room catalog
type RoomStore interface {
	Insert(room *models.Room) error
	Get(typeID string) (*models.Room, error)
	List() ([]models.Room, error)
	UpdateRate(typeID string, rate float64) error
	Count() (int, error)
}

// BookingStore is the persistence contract for the booking ledger
type BookingStore interface {
	Insert(booking *models.Booking) error
	Get(bookingID string) (*models.Booking, error)
	UpdateStatus(bookingID string, status models.BookingStatus) error
	Delete(bookingID string) error
	List(filter models.BookingFilter) ([]models.Booking, error)
	CountOverlapping(roomTypeID string, checkin, checkout time.Time) (int, error)
	TotalRevenue(status models.BookingStatus) (float64, error)
	CountByRoomType() (map[string]int, error)
}

// BlockedDateStore is the persistence contract for the blocked-date registry
type BlockedDateStore interface {
	Insert(blocked *models.BlockedDateRange) error
	Delete(id string) error
	List() ([]models.BlockedDateRange, error)
}

// SettingsStore is the persistence contract for the admin settings singleton
type SettingsStore interface {
	Get() (*models.AdminSettings, error)
	Save(settings *models.AdminSettings) error
}
