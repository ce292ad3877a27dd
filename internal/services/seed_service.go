package services

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/laddalodge/booking-backend/internal/models"
)

// SeedService populates a fresh store with default records: the fixed room
// catalog and the admin settings singleton. Bookings and blocked dates
// start empty. Seeding is idempotent; an already-populated store is left
// untouched.
type SeedService struct {
	rooms    RoomStore
	settings SettingsStore
	logger   *logrus.Logger
}

// NewSeedService creates a new SeedService
func NewSeedService(rooms RoomStore, settings SettingsStore, logger *logrus.Logger) *SeedService {
	return &SeedService{
		rooms:    rooms,
		settings: settings,
		logger:   logger,
	}
}

// Run seeds defaults where collections are empty
func (s *SeedService) Run(contactPhone, contactEmail string) error {
	count, err := s.rooms.Count()
	if err != nil {
		return err
	}

	if count == 0 {
		defaults := models.DefaultRooms()
		for i := range defaults {
			if err := s.rooms.Insert(&defaults[i]); err != nil {
				return err
			}
		}
		s.logger.WithField("rooms", len(defaults)).Info("Seeded room catalog")
	}

	_, err = s.settings.Get()
	if errors.Is(err, models.ErrNotFound) {
		settings := &models.AdminSettings{
			ContactPhone: contactPhone,
			ContactEmail: contactEmail,
		}
		if err := s.settings.Save(settings); err != nil {
			return err
		}
		s.logger.Info("Seeded admin settings")
		return nil
	}

	return err
}
