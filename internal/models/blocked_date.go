package models

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// BlockedDateRange is an admin-declared unavailable interval. Ranges are
// created and deleted, never edited in place.
type BlockedDateRange struct {
	ID        string    `json:"id" db:"id"`
	StartDate time.Time `json:"start_date" db:"start_date"`
	EndDate   time.Time `json:"end_date" db:"end_date"`
	Reason    string    `json:"reason,omitempty" db:"reason"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewBlockedDateRange validates and builds a blocked range
func NewBlockedDateRange(startDate, endDate, reason string) (*BlockedDateRange, error) {
	if startDate == "" || endDate == "" {
		return nil, &ValidationError{Field: "dates", Message: "start and end dates are required"}
	}

	start, err := ParseDate(startDate)
	if err != nil {
		return nil, &ValidationError{Field: "start_date", Message: "invalid date, expected YYYY-MM-DD"}
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return nil, &ValidationError{Field: "end_date", Message: "invalid date, expected YYYY-MM-DD"}
	}
	if end.Before(start) {
		return nil, &ValidationError{Field: "end_date", Message: "end date cannot be before start date"}
	}

	return &BlockedDateRange{
		ID:        uuid.New().String(),
		StartDate: start,
		EndDate:   end,
		Reason:    reason,
		CreatedAt: time.Now(),
	}, nil
}

// OverlapsStay reports whether a proposed stay intersects this range.
// Boundaries are inclusive on both sides: a stay that starts on the
// range's end day, or ends on its start day, still counts as blocked.
func (b *BlockedDateRange) OverlapsStay(checkin, checkout time.Time) bool {
	return !checkin.After(b.EndDate) && !checkout.Before(b.StartDate)
}

// ParseDate parses a calendar date in YYYY-MM-DD form
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// CreateBlockedDateRequest is the admin request to block a date range
type CreateBlockedDateRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason,omitempty"`
}
