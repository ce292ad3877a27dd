package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/laddalodge/booking-backend/internal/models"
)

// BookingRepository handles database operations for the bookings table
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Insert appends a new booking to the ledger
func (r *BookingRepository) Insert(booking *models.Booking) error {
	query := `
		INSERT INTO bookings (
			booking_id, first_name, last_name, email, phone, national_id, address,
			room_type_id, room_type_name, checkin_date, checkout_date,
			guest_count, nights, nightly_rate, total_amount,
			special_requests, payment_method, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
		)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		booking.BookingID, booking.FirstName, booking.LastName, booking.Email,
		booking.Phone, booking.NationalID, booking.Address,
		booking.RoomTypeID, booking.RoomTypeName, booking.CheckinDate, booking.CheckoutDate,
		booking.GuestCount, booking.Nights, booking.NightlyRate, booking.TotalAmount,
		booking.SpecialRequests, booking.PaymentMethod, booking.Status,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	return nil
}

// Get retrieves a booking by its booking ID
func (r *BookingRepository) Get(bookingID string) (*models.Booking, error) {
	query := selectBookingColumns + ` WHERE booking_id = $1`

	booking, err := r.scanBooking(r.db.QueryRow(query, bookingID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("booking %s: %w", bookingID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}

	return booking, nil
}

// UpdateStatus sets a booking's status in place
func (r *BookingRepository) UpdateStatus(bookingID string, status models.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = NOW()
		WHERE booking_id = $1
	`

	result, err := r.db.Exec(query, bookingID, status)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("booking %s: %w", bookingID, models.ErrNotFound)
	}

	return nil
}

// Delete permanently removes a booking from the ledger
func (r *BookingRepository) Delete(bookingID string) error {
	result, err := r.db.Exec(`DELETE FROM bookings WHERE booking_id = $1`, bookingID)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("booking %s: %w", bookingID, models.ErrNotFound)
	}

	return nil
}

// List returns bookings newest-first, narrowed by the filter
func (r *BookingRepository) List(filter models.BookingFilter) ([]models.Booking, error) {
	query := selectBookingColumns
	conditions := []string{}
	args := []interface{}{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		idx := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(first_name || ' ' || last_name ILIKE $%d OR email ILIKE $%d OR room_type_name ILIKE $%d)",
			idx, idx, idx))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.FromDate != nil {
		args = append(args, *filter.FromDate)
		conditions = append(conditions, fmt.Sprintf("checkin_date >= $%d", len(args)))
	}
	if filter.ToDate != nil {
		args = append(args, *filter.ToDate)
		conditions = append(conditions, fmt.Sprintf("checkin_date <= $%d", len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountOverlapping counts confirmed bookings of a room type whose stay
// intersects the proposed interval. Stays are half-open: a booking that
// checks out on the proposed check-in day does not collide.
func (r *BookingRepository) CountOverlapping(roomTypeID string, checkin, checkout time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE room_type_id = $1
		  AND status = 'confirmed'
		  AND checkin_date < $3
		  AND checkout_date > $2
	`

	var count int
	err := r.db.QueryRow(query, roomTypeID, checkin, checkout).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}
	return count, nil
}

// TotalRevenue sums total_amount over bookings with the given status
func (r *BookingRepository) TotalRevenue(status models.BookingStatus) (float64, error) {
	query := `SELECT COALESCE(SUM(total_amount), 0) FROM bookings WHERE status = $1`

	var total float64
	if err := r.db.QueryRow(query, status).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	return total, nil
}

// CountByRoomType returns confirmed booking counts keyed by room type
func (r *BookingRepository) CountByRoomType() (map[string]int, error) {
	query := `
		SELECT room_type_id, COUNT(*)
		FROM bookings
		WHERE status = 'confirmed'
		GROUP BY room_type_id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings by room type: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var typeID string
		var count int
		if err := rows.Scan(&typeID, &count); err != nil {
			return nil, err
		}
		counts[typeID] = count
	}

	return counts, rows.Err()
}

const selectBookingColumns = `
	SELECT booking_id, first_name, last_name, email, phone, national_id, address,
		   room_type_id, room_type_name, checkin_date, checkout_date,
		   guest_count, nights, nightly_rate, total_amount,
		   special_requests, payment_method, status, created_at, updated_at
	FROM bookings`

// scanBooking scans a single booking
func (r *BookingRepository) scanBooking(row scanner) (*models.Booking, error) {
	booking := &models.Booking{}
	var specialRequests sql.NullString

	err := row.Scan(
		&booking.BookingID, &booking.FirstName, &booking.LastName, &booking.Email,
		&booking.Phone, &booking.NationalID, &booking.Address,
		&booking.RoomTypeID, &booking.RoomTypeName, &booking.CheckinDate, &booking.CheckoutDate,
		&booking.GuestCount, &booking.Nights, &booking.NightlyRate, &booking.TotalAmount,
		&specialRequests, &booking.PaymentMethod, &booking.Status,
		&booking.CreatedAt, &booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if specialRequests.Valid {
		booking.SpecialRequests = &specialRequests.String
	}

	return booking, nil
}

// scanBookings scans multiple bookings from rows
func (r *BookingRepository) scanBookings(rows *sql.Rows) ([]models.Booking, error) {
	bookings := []models.Booking{}

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}

	return bookings, rows.Err()
}
