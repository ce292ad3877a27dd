package models

import "time"

// AdminSettings is the singleton back-office configuration. A fresh store
// gets one row with defaults; each admin save replaces it wholesale.
type AdminSettings struct {
	ContactPhone string    `json:"contact_phone" db:"contact_phone"`
	ContactEmail string    `json:"contact_email" db:"contact_email"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// SaveSettingsRequest carries the admin settings form: contact details plus
// the per-room-type nightly rate overrides
type SaveSettingsRequest struct {
	ContactPhone string             `json:"contact_phone" binding:"required"`
	ContactEmail string             `json:"contact_email" binding:"required,email"`
	RoomRates    map[string]float64 `json:"room_rates"`
}
