package database

import (
	"database/sql"
	"fmt"

	"github.com/laddalodge/booking-backend/internal/models"
)

// SettingsRepository handles database operations for the admin_settings
// singleton row
type SettingsRepository struct {
	db DB
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(db DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get retrieves the settings row
func (r *SettingsRepository) Get() (*models.AdminSettings, error) {
	query := `
		SELECT contact_phone, contact_email, updated_at
		FROM admin_settings
		WHERE id = 1
	`

	settings := &models.AdminSettings{}
	err := r.db.QueryRow(query).Scan(
		&settings.ContactPhone, &settings.ContactEmail, &settings.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("admin settings: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch admin settings: %w", err)
	}

	return settings, nil
}

// Save replaces the settings row wholesale, creating it if absent
func (r *SettingsRepository) Save(settings *models.AdminSettings) error {
	query := `
		INSERT INTO admin_settings (id, contact_phone, contact_email, updated_at)
		VALUES (1, $1, $2, NOW())
		ON CONFLICT (id) DO UPDATE
		SET contact_phone = EXCLUDED.contact_phone,
			contact_email = EXCLUDED.contact_email,
			updated_at = NOW()
		RETURNING updated_at
	`

	err := r.db.QueryRow(query, settings.ContactPhone, settings.ContactEmail).
		Scan(&settings.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save admin settings: %w", err)
	}

	return nil
}
