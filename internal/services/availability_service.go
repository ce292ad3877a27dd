package services

import (
	"time"

	"github.com/laddalodge/booking-backend/internal/models"
)

// AvailabilityService owns the blocked-date registry
type AvailabilityService struct {
	blockedDates BlockedDateStore
}

// NewAvailabilityService creates a new AvailabilityService
func NewAvailabilityService(blockedDates BlockedDateStore) *AvailabilityService {
	return &AvailabilityService{blockedDates: blockedDates}
}

// Add validates and stores a new blocked range
func (s *AvailabilityService) Add(req *models.CreateBlockedDateRequest) (*models.BlockedDateRange, error) {
	blocked, err := models.NewBlockedDateRange(req.StartDate, req.EndDate, req.Reason)
	if err != nil {
		return nil, err
	}

	if err := s.blockedDates.Insert(blocked); err != nil {
		return nil, err
	}
	return blocked, nil
}

// Remove deletes a blocked range permanently. There is no undo.
func (s *AvailabilityService) Remove(id string) error {
	return s.blockedDates.Delete(id)
}

// List returns all blocked ranges
func (s *AvailabilityService) List() ([]models.BlockedDateRange, error) {
	return s.blockedDates.List()
}

// IsBlocked reports whether a proposed stay overlaps any blocked range.
// Overlap is inclusive on both boundaries, so a stay that merely touches a
// blocked day is rejected.
func (s *AvailabilityService) IsBlocked(checkin, checkout time.Time) (bool, error) {
	ranges, err := s.blockedDates.List()
	if err != nil {
		return false, err
	}

	for i := range ranges {
		if ranges[i].OverlapsStay(checkin, checkout) {
			return true, nil
		}
	}
	return false, nil
}
