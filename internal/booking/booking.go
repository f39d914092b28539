// Package booking persists confirmed delivery bookings.
package booking

import (
	"time"

	"github.com/google/uuid"
)

// Booking is a finalized delivery request with its computed fee. It is
// immutable once written; there is no update path.
type Booking struct {
	ID            uuid.UUID `db:"id"`
	ChatID        int64     `db:"chat_id"`
	RecipientName string    `db:"recipient_name"`
	BookerName    string    `db:"booker_name"`
	DropOff       string    `db:"drop_off"`
	PickUp        string    `db:"pick_up"`
	Description   string    `db:"description"`
	DistanceKm    float64   `db:"distance_km"`
	Fee           float64   `db:"fee"`
	CreatedAt     time.Time `db:"created_at"`
}
