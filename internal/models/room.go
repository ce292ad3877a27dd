package models

import (
	"fmt"
	"time"
)

// Room represents a bookable room-type offering
type Room struct {
	TypeID         string    `json:"type_id" db:"type_id"`
	DisplayName    string    `json:"display_name" db:"display_name"`
	NightlyRate    float64   `json:"nightly_rate" db:"nightly_rate"`
	MaxGuests      int       `json:"max_guests" db:"max_guests"`
	AvailableUnits int       `json:"available_units" db:"available_units"`
	Description    string    `json:"description" db:"description"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Room type IDs are fixed at seed time; the catalog never grows at runtime.
const (
	RoomTypeFamily       = "family"
	RoomTypeSelfCatering = "selfcatering"
	RoomTypeStandard     = "standard"
)

// NewRoom builds a room and enforces the catalog invariants
func NewRoom(typeID, displayName string, nightlyRate float64, maxGuests, availableUnits int, description string) (*Room, error) {
	if typeID == "" {
		return nil, &ValidationError{Field: "type_id", Message: "type_id is required"}
	}
	if nightlyRate < 0 {
		return nil, &ValidationError{Field: "nightly_rate", Message: "nightly rate cannot be negative"}
	}
	if maxGuests < 1 {
		return nil, &ValidationError{Field: "max_guests", Message: "max_guests must be at least 1"}
	}
	if availableUnits < 0 {
		return nil, &ValidationError{Field: "available_units", Message: "available_units cannot be negative"}
	}

	now := time.Now()
	return &Room{
		TypeID:         typeID,
		DisplayName:    displayName,
		NightlyRate:    nightlyRate,
		MaxGuests:      maxGuests,
		AvailableUnits: availableUnits,
		Description:    description,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// UpdateRate replaces the nightly rate. Existing booking snapshots are
// never recalculated.
func (r *Room) UpdateRate(rate float64) error {
	if rate < 0 {
		return &ValidationError{Field: "nightly_rate", Message: fmt.Sprintf("nightly rate cannot be negative: %.2f", rate)}
	}
	r.NightlyRate = rate
	r.UpdatedAt = time.Now()
	return nil
}

func mustRoom(typeID, displayName string, nightlyRate float64, maxGuests, availableUnits int, description string) Room {
	room, err := NewRoom(typeID, displayName, nightlyRate, maxGuests, availableUnits, description)
	if err != nil {
		panic(err)
	}
	return *room
}

// DefaultRooms returns the seed catalog in its fixed display order.
// Rates are ZAR per person per night.
func DefaultRooms() []Room {
	return []Room{
		mustRoom(RoomTypeFamily, "Family Room", 450, 3, 24,
			"Double bed + single bed, en-suite shower, OpenView TV, tea/coffee facilities"),
		mustRoom(RoomTypeSelfCatering, "Self Catering Unit", 650, 4, 12,
			"Two double bedrooms, living room, kitchenette, shared bathroom, OpenView TV"),
		mustRoom(RoomTypeStandard, "Standard Room", 350, 2, 64,
			"Two single beds, en-suite shower, OpenView TV, tea/coffee facilities"),
	}
}
