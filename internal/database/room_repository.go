package database

import (
	"database/sql"
	"fmt"

	"github.com/laddalodge/booking-backend/internal/models"
)

// RoomRepository handles database operations for the rooms table
type RoomRepository struct {
	db DB
}

// NewRoomRepository creates a new RoomRepository
func NewRoomRepository(db DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// Insert adds a room to the catalog (seed time only)
func (r *RoomRepository) Insert(room *models.Room) error {
	query := `
		INSERT INTO rooms (type_id, display_name, nightly_rate, max_guests, available_units, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		room.TypeID, room.DisplayName, room.NightlyRate,
		room.MaxGuests, room.AvailableUnits, room.Description,
	).Scan(&room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert room: %w", err)
	}

	return nil
}

// Get retrieves a room by its type ID
func (r *RoomRepository) Get(typeID string) (*models.Room, error) {
	query := `
		SELECT type_id, display_name, nightly_rate, max_guests, available_units, description,
			   created_at, updated_at
		FROM rooms
		WHERE type_id = $1
	`

	room := &models.Room{}
	err := r.db.QueryRow(query, typeID).Scan(
		&room.TypeID, &room.DisplayName, &room.NightlyRate,
		&room.MaxGuests, &room.AvailableUnits, &room.Description,
		&room.CreatedAt, &room.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("room %s: %w", typeID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch room: %w", err)
	}

	return room, nil
}

// List returns the catalog in seed order
func (r *RoomRepository) List() ([]models.Room, error) {
	query := `
		SELECT type_id, display_name, nightly_rate, max_guests, available_units, description,
			   created_at, updated_at
		FROM rooms
		ORDER BY created_at, type_id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	rooms := []models.Room{}
	for rows.Next() {
		var room models.Room
		err := rows.Scan(
			&room.TypeID, &room.DisplayName, &room.NightlyRate,
			&room.MaxGuests, &room.AvailableUnits, &room.Description,
			&room.CreatedAt, &room.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}

// UpdateRate replaces a room's nightly rate in place
func (r *RoomRepository) UpdateRate(typeID string, rate float64) error {
	query := `
		UPDATE rooms
		SET nightly_rate = $2, updated_at = NOW()
		WHERE type_id = $1
	`

	result, err := r.db.Exec(query, typeID, rate)
	if err != nil {
		return fmt.Errorf("failed to update room rate: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("room %s: %w", typeID, models.ErrNotFound)
	}

	return nil
}

// Count returns the number of rooms in the catalog
func (r *RoomRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM rooms`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}
	return count, nil
}
