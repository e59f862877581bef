package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dverho/innkeep/internal/core/domain"
)

// BookingStore persists the booking collection in postgres while
// keeping the flat-file driver's contract: SaveBookings replaces the
// whole collection in one transaction, in the given order.
type BookingStore struct {
	db *sql.DB
}

func NewBookingStore(db *sql.DB) *BookingStore {
	return &BookingStore{db: db}
}

func (r *BookingStore) LoadBookings(ctx context.Context) ([]domain.Booking, error) {
	if err := r.ensureSchema(ctx); err != nil {
		return nil, err
	}

	query := `
	SELECT id, room_id, guest_name, guest_email, start_night, end_night, status, total_amount
	FROM bookings
	ORDER BY seq
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var (
			b          domain.Booking
			start, end time.Time
			rawStatus  string
			rawAmount  string
		)
		if err := rows.Scan(&b.ID, &b.RoomID, &b.GuestName, &b.GuestEmail, &start, &end, &rawStatus, &rawAmount); err != nil {
			return nil, err
		}

		b.Start = start.UTC()
		b.End = end.UTC()

		b.Status, err = domain.ParseBookingStatus(rawStatus)
		if err != nil {
			return nil, fmt.Errorf("booking %s: %w", b.ID, err)
		}

		b.TotalAmount, err = decimal.NewFromString(rawAmount)
		if err != nil {
			return nil, fmt.Errorf("booking %s: bad amount: %w", b.ID, err)
		}

		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

func (r *BookingStore) SaveBookings(ctx context.Context, bookings []domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bookings`); err != nil {
		return fmt.Errorf("failed to clear bookings: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO bookings (id, room_id, guest_name, guest_email, start_night, end_night, status, total_amount)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare booking statement: %w", err)
	}

	defer stmt.Close()

	for i := range bookings {
		b := &bookings[i]
		_, err := stmt.ExecContext(ctx, b.ID, b.RoomID, b.GuestName, b.GuestEmail, b.Start, b.End, string(b.Status), b.TotalAmount.StringFixed(2))
		if err != nil {
			return fmt.Errorf("failed to insert booking %s: %w", b.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bookings: %w", err)
	}

	return nil
}

func (r *BookingStore) ensureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS bookings (
		seq BIGSERIAL,
		id TEXT PRIMARY KEY,
		room_id TEXT NOT NULL,
		guest_name TEXT NOT NULL,
		guest_email TEXT NOT NULL,
		start_night DATE NOT NULL,
		end_night DATE NOT NULL,
		status TEXT NOT NULL,
		total_amount NUMERIC(12,2) NOT NULL
	)
	`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create bookings table: %w", err)
	}

	return nil
}
