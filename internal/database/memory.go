package database

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/laddalodge/booking-backend/internal/models"
)

// The memory stores back the engine with plain maps and slices. They serve
// tests and the STORE_BACKEND=memory development mode; each collection
// guards itself with its own lock, matching the one-collection-per-mutation
// model of the engine.

// MemoryRoomStore is an in-memory room catalog
type MemoryRoomStore struct {
	mu    sync.RWMutex
	rooms []models.Room
}

// NewMemoryRoomStore creates an empty in-memory catalog
func NewMemoryRoomStore() *MemoryRoomStore {
	return &MemoryRoomStore{}
}

// Insert adds a room, rejecting duplicate type IDs
func (s *MemoryRoomStore) Insert(room *models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.rooms {
		if existing.TypeID == room.TypeID {
			return fmt.Errorf("room %s already exists", room.TypeID)
		}
	}
	s.rooms = append(s.rooms, *room)
	return nil
}

// Get retrieves a room by type ID
func (s *MemoryRoomStore) Get(typeID string) (*models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.rooms {
		if s.rooms[i].TypeID == typeID {
			room := s.rooms[i]
			return &room, nil
		}
	}
	return nil, fmt.Errorf("room %s: %w", typeID, models.ErrNotFound)
}

// List returns the catalog in insertion order
func (s *MemoryRoomStore) List() ([]models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rooms := make([]models.Room, len(s.rooms))
	copy(rooms, s.rooms)
	return rooms, nil
}

// UpdateRate replaces a room's nightly rate
func (s *MemoryRoomStore) UpdateRate(typeID string, rate float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.rooms {
		if s.rooms[i].TypeID == typeID {
			s.rooms[i].NightlyRate = rate
			s.rooms[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("room %s: %w", typeID, models.ErrNotFound)
}

// Count returns the number of rooms
func (s *MemoryRoomStore) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms), nil
}

// MemoryBookingStore is an in-memory booking ledger
type MemoryBookingStore struct {
	mu       sync.RWMutex
	bookings []models.Booking
}

// NewMemoryBookingStore creates an empty in-memory ledger
func NewMemoryBookingStore() *MemoryBookingStore {
	return &MemoryBookingStore{}
}

// Insert appends a booking
func (s *MemoryBookingStore) Insert(booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.bookings {
		if existing.BookingID == booking.BookingID {
			return fmt.Errorf("booking %s already exists", booking.BookingID)
		}
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	s.bookings = append(s.bookings, *booking)
	return nil
}

// Get retrieves a booking by ID
func (s *MemoryBookingStore) Get(bookingID string) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.bookings {
		if s.bookings[i].BookingID == bookingID {
			booking := s.bookings[i]
			return &booking, nil
		}
	}
	return nil, fmt.Errorf("booking %s: %w", bookingID, models.ErrNotFound)
}

// UpdateStatus sets a booking's status in place
func (s *MemoryBookingStore) UpdateStatus(bookingID string, status models.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.bookings {
		if s.bookings[i].BookingID == bookingID {
			s.bookings[i].Status = status
			s.bookings[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("booking %s: %w", bookingID, models.ErrNotFound)
}

// Delete removes a booking permanently
func (s *MemoryBookingStore) Delete(bookingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.bookings {
		if s.bookings[i].BookingID == bookingID {
			s.bookings = append(s.bookings[:i], s.bookings[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("booking %s: %w", bookingID, models.ErrNotFound)
}

// List returns bookings newest-first, narrowed by the filter
func (s *MemoryBookingStore) List(filter models.BookingFilter) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Booking{}
	for i := range s.bookings {
		b := s.bookings[i]
		if !b.MatchesSearch(strings.TrimSpace(filter.Search)) {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.FromDate != nil && b.CheckinDate.Before(*filter.FromDate) {
			continue
		}
		if filter.ToDate != nil && b.CheckinDate.After(*filter.ToDate) {
			continue
		}
		result = append(result, b)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// CountOverlapping counts confirmed bookings of a room type overlapping the
// proposed stay (half-open intervals, checkout day is free)
func (s *MemoryBookingStore) CountOverlapping(roomTypeID string, checkin, checkout time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for i := range s.bookings {
		b := s.bookings[i]
		if b.RoomTypeID != roomTypeID || b.Status != models.BookingStatusConfirmed {
			continue
		}
		if b.CheckinDate.Before(checkout) && b.CheckoutDate.After(checkin) {
			count++
		}
	}
	return count, nil
}

// TotalRevenue sums total_amount over bookings with the given status
func (s *MemoryBookingStore) TotalRevenue(status models.BookingStatus) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0.0
	for i := range s.bookings {
		if s.bookings[i].Status == status {
			total += s.bookings[i].TotalAmount
		}
	}
	return total, nil
}

// CountByRoomType returns confirmed booking counts keyed by room type
func (s *MemoryBookingStore) CountByRoomType() (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := map[string]int{}
	for i := range s.bookings {
		if s.bookings[i].Status == models.BookingStatusConfirmed {
			counts[s.bookings[i].RoomTypeID]++
		}
	}
	return counts, nil
}

// MemoryBlockedDateStore is an in-memory blocked-date registry
type MemoryBlockedDateStore struct {
	mu     sync.RWMutex
	ranges []models.BlockedDateRange
}

// NewMemoryBlockedDateStore creates an empty in-memory registry
func NewMemoryBlockedDateStore() *MemoryBlockedDateStore {
	return &MemoryBlockedDateStore{}
}

// Insert appends a blocked range
func (s *MemoryBlockedDateStore) Insert(blocked *models.BlockedDateRange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ranges = append(s.ranges, *blocked)
	return nil
}

// Delete removes a blocked range by ID
func (s *MemoryBlockedDateStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.ranges {
		if s.ranges[i].ID == id {
			s.ranges = append(s.ranges[:i], s.ranges[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("blocked date range %s: %w", id, models.ErrNotFound)
}

// List returns all blocked ranges ordered by start date
func (s *MemoryBlockedDateStore) List() ([]models.BlockedDateRange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ranges := make([]models.BlockedDateRange, len(s.ranges))
	copy(ranges, s.ranges)
	sort.SliceStable(ranges, func(i, j int) bool {
		return ranges[i].StartDate.Before(ranges[j].StartDate)
	})
	return ranges, nil
}

// MemorySettingsStore is an in-memory settings singleton
type MemorySettingsStore struct {
	mu       sync.RWMutex
	settings *models.AdminSettings
}

// NewMemorySettingsStore creates an empty in-memory settings store
func NewMemorySettingsStore() *MemorySettingsStore {
	return &MemorySettingsStore{}
}

// Get retrieves the settings singleton
func (s *MemorySettingsStore) Get() (*models.AdminSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		return nil, fmt.Errorf("admin settings: %w", models.ErrNotFound)
	}
	settings := *s.settings
	return &settings, nil
}

// Save replaces the settings singleton wholesale
func (s *MemorySettingsStore) Save(settings *models.AdminSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings.UpdatedAt = time.Now()
	saved := *settings
	s.settings = &saved
	return nil
}
