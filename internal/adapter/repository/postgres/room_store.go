package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dverho/innkeep/internal/core/domain"
)

// RoomStore reads the room inventory from postgres. The table is
// created and seeded with the default inventory on first use, mirroring
// the flat-file driver's bootstrap, and is never written afterwards.
type RoomStore struct {
	db *sql.DB
}

func NewRoomStore(db *sql.DB) *RoomStore {
	return &RoomStore{db: db}
}

func (r *RoomStore) LoadRooms(ctx context.Context) ([]domain.Room, error) {
	if err := r.ensureSeeded(ctx); err != nil {
		return nil, err
	}

	query := `
	SELECT id, type, rate, description
	FROM rooms
	ORDER BY pos
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var (
			room    domain.Room
			rawType string
			rawRate string
		)
		if err := rows.Scan(&room.ID, &rawType, &rawRate, &room.Description); err != nil {
			return nil, err
		}

		room.Type, err = domain.ParseRoomType(rawType)
		if err != nil {
			return nil, fmt.Errorf("room %s: %w", room.ID, err)
		}

		room.RatePerNight, err = decimal.NewFromString(rawRate)
		if err != nil {
			return nil, fmt.Errorf("room %s: bad rate: %w", room.ID, err)
		}

		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}

func (r *RoomStore) ensureSeeded(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS rooms (
		pos SERIAL,
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		rate NUMERIC(10,2) NOT NULL,
		description TEXT NOT NULL
	)
	`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create rooms table: %w", err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO rooms (id, type, rate, description)
	VALUES ($1, $2, $3, $4)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare seed statement: %w", err)
	}

	defer stmt.Close()

	for _, room := range domain.DefaultInventory() {
		_, err := stmt.ExecContext(ctx, room.ID, string(room.Type), room.RatePerNight.StringFixed(2), room.Description)
		if err != nil {
			return fmt.Errorf("failed to seed room %s: %w", room.ID, err)
		}
	}

	return tx.Commit()
}
