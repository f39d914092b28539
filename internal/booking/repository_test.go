package booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestInsertAssignsIDAndServerTimestamp(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(sqlmock.AnyArg(), int64(99), "Juan", "Maria",
			"123 Main St", "456 Oak Ave", "fragile box", 5.0, 109.0).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	saved, err := repo.Insert(context.Background(), Booking{
		ChatID:        99,
		RecipientName: "Juan",
		BookerName:    "Maria",
		DropOff:       "123 Main St",
		PickUp:        "456 Oak Ave",
		Description:   "fragile box",
		DistanceKm:    5.0,
		Fee:           109.0,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.Equal(t, now, saved.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertPropagatesWriteFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(assert.AnError)

	_, err := repo.Insert(context.Background(), Booking{ChatID: 99})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestListRecentOrdersAndLimits(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "chat_id", "recipient_name", "booker_name",
		"drop_off", "pick_up", "description", "distance_km", "fee", "created_at",
	}).
		AddRow(uuid.New(), int64(99), "Juan", "Maria", "a", "b", "box", 5.0, 109.0, now).
		AddRow(uuid.New(), int64(99), "Pedro", "Maria", "c", "d", "docs", 2.0, 79.0, now.Add(-time.Hour))

	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WithArgs(int64(99), 5).
		WillReturnRows(rows)

	got, err := repo.ListRecent(context.Background(), 99, 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Juan", got[0].RecipientName)
	assert.Equal(t, "Pedro", got[1].RecipientName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecentEmpty(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WithArgs(int64(7), 5).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "chat_id", "recipient_name", "booker_name",
			"drop_off", "pick_up", "description", "distance_km", "fee", "created_at",
		}))

	got, err := repo.ListRecent(context.Background(), 7, 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}
