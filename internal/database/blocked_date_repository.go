package database

import (
	"fmt"

	"github.com/laddalodge/booking-backend/internal/models"
)

// BlockedDateRepository handles database operations for the blocked_dates table
type BlockedDateRepository struct {
	db DB
}

// NewBlockedDateRepository creates a new BlockedDateRepository
func NewBlockedDateRepository(db DB) *BlockedDateRepository {
	return &BlockedDateRepository{db: db}
}

// Insert appends a blocked range to the registry
func (r *BlockedDateRepository) Insert(blocked *models.BlockedDateRange) error {
	query := `
		INSERT INTO blocked_dates (id, start_date, end_date, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.db.QueryRow(
		query,
		blocked.ID, blocked.StartDate, blocked.EndDate, blocked.Reason,
	).Scan(&blocked.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert blocked date range: %w", err)
	}

	return nil
}

// Delete permanently removes a blocked range by ID
func (r *BlockedDateRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM blocked_dates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete blocked date range: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("blocked date range %s: %w", id, models.ErrNotFound)
	}

	return nil
}

// List returns all blocked ranges, oldest first
func (r *BlockedDateRepository) List() ([]models.BlockedDateRange, error) {
	query := `
		SELECT id, start_date, end_date, reason, created_at
		FROM blocked_dates
		ORDER BY start_date, created_at
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocked date ranges: %w", err)
	}
	defer rows.Close()

	ranges := []models.BlockedDateRange{}
	for rows.Next() {
		var blocked models.BlockedDateRange
		err := rows.Scan(
			&blocked.ID, &blocked.StartDate, &blocked.EndDate,
			&blocked.Reason, &blocked.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, blocked)
	}

	return ranges, rows.Err()
}
