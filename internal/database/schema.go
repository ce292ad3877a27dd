package database

import "fmt"

// schemaStatements creates the four collections the engine owns. Statements
// are idempotent so startup can run them unconditionally.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS rooms (
		type_id         TEXT PRIMARY KEY,
		display_name    TEXT NOT NULL,
		nightly_rate    NUMERIC(10,2) NOT NULL CHECK (nightly_rate >= 0),
		max_guests      INTEGER NOT NULL CHECK (max_guests > 0),
		available_units INTEGER NOT NULL CHECK (available_units >= 0),
		description     TEXT NOT NULL DEFAULT '',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		booking_id       TEXT PRIMARY KEY,
		first_name       TEXT NOT NULL,
		last_name        TEXT NOT NULL,
		email            TEXT NOT NULL,
		phone            TEXT NOT NULL,
		national_id      TEXT NOT NULL,
		address          TEXT NOT NULL,
		room_type_id     TEXT NOT NULL REFERENCES rooms(type_id),
		room_type_name   TEXT NOT NULL,
		checkin_date     DATE NOT NULL,
		checkout_date    DATE NOT NULL CHECK (checkout_date > checkin_date),
		guest_count      INTEGER NOT NULL CHECK (guest_count >= 1),
		nights           INTEGER NOT NULL,
		nightly_rate     NUMERIC(10,2) NOT NULL,
		total_amount     NUMERIC(10,2) NOT NULL,
		special_requests TEXT,
		payment_method   TEXT NOT NULL,
		status           TEXT NOT NULL DEFAULT 'confirmed',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_room_type ON bookings(room_type_id)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_email ON bookings(email)`,
	`CREATE TABLE IF NOT EXISTS blocked_dates (
		id         UUID PRIMARY KEY,
		start_date DATE NOT NULL,
		end_date   DATE NOT NULL CHECK (end_date >= start_date),
		reason     TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS admin_settings (
		id            INTEGER PRIMARY KEY CHECK (id = 1),
		contact_phone TEXT NOT NULL,
		contact_email TEXT NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// EnsureSchema creates any missing tables and indexes
func EnsureSchema(db DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
