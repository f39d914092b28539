package booking

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/padyakph/hatidbot/internal/logger"
)

const insertQuery = `
	INSERT INTO bookings (id, chat_id, recipient_name, booker_name, drop_off, pick_up, description, distance_km, fee)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING created_at`

const listRecentQuery = `
	SELECT id, chat_id, recipient_name, booker_name, drop_off, pick_up, description, distance_km, fee, created_at
	FROM bookings
	WHERE chat_id = $1
	ORDER BY created_at DESC
	LIMIT $2`

// Repository stores bookings in Postgres.
type Repository struct {
	db  *sqlx.DB
	log *slog.Logger
}

// NewRepository creates a Repository on top of an open connection pool.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		db:  db,
		log: logger.Component("db.bookings"),
	}
}

// Insert writes a booking and returns it with the server-assigned creation
// timestamp. A zero ID is replaced with a fresh one.
func (r *Repository) Insert(ctx context.Context, b Booking) (Booking, error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	row := r.db.QueryRowxContext(ctx, insertQuery,
		b.ID, b.ChatID, b.RecipientName, b.BookerName,
		b.DropOff, b.PickUp, b.Description, b.DistanceKm, b.Fee,
	)
	if err := row.Scan(&b.CreatedAt); err != nil {
		return Booking{}, fmt.Errorf("insert booking: %w", err)
	}

	r.log.LogAttrs(ctx, slog.LevelInfo, "booking.insert",
		slog.String("status", "ok"),
		slog.Int64("chat_id", b.ChatID),
		slog.String("booking_id", b.ID.String()),
		slog.Float64("distance_km", b.DistanceKm),
		slog.Float64("fee", b.Fee),
	)
	return b, nil
}

// ListRecent returns the most recent bookings for one chat, newest first.
func (r *Repository) ListRecent(ctx context.Context, chatID int64, limit int) ([]Booking, error) {
	var out []Booking
	if err := r.db.SelectContext(ctx, &out, listRecentQuery, chatID, limit); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return out, nil
}
