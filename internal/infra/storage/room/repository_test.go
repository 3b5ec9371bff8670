package room

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FrontDeskService/pkg/dbmetrics"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func roomRows() *sqlmock.Rows {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(columns).
		AddRow(int64(7), "101", "Deluxe", 100.0, true, now, now)
}

func TestGetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, number, name, base_price_per_night, is_active, created_at, updated_at FROM rooms WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(roomRows())

	room, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), room.ID)
	assert.Equal(t, "101", room.Number)
	assert.Equal(t, 100.0, room.BasePricePerNight)
	assert.True(t, room.IsActive)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery("FROM rooms").WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestLockByID_UsesForUpdateInTransaction(t *testing.T) {
	db, mock := newMock(t)
	wrapped := dbmetrics.Wrap(db, nil, "test")
	repo := NewRepository(wrapped)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM rooms WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(7)).
		WillReturnRows(roomRows())
	mock.ExpectCommit()

	tx, err := wrapped.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	room, err := repo.LockByID(dbmetrics.WithTx(context.Background(), tx), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), room.ID)

	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_OnlyActive(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM rooms WHERE is_active = $1 ORDER BY number ASC")).
		WithArgs(true).
		WillReturnRows(roomRows())

	rooms, err := repo.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}
