package booking

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
	"github.com/m04kA/SMC-FrontDeskService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FrontDeskService/pkg/ptr"
	"github.com/m04kA/SMC-FrontDeskService/pkg/txmanager"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func testBooking(t *testing.T) *domain.Booking {
	t.Helper()
	stay, err := domain.ParseDateRange("2024-03-10", "2024-03-13")
	require.NoError(t, err)
	return &domain.Booking{
		ID:                   uuid.MustParse("8d3f6c1e-2b7a-4f7e-9c55-0e4b1a2c3d4e"),
		BookingNumber:        1001,
		RoomID:               7,
		Stay:                 stay,
		Nights:               3,
		Guest:                domain.Guest{Name: "Ivan Petrov", Phone: "+79990000000"},
		BasePricePerNight:    100,
		PricePerNightWithVat: 117,
		TotalPrice:           351,
		VATRate:              0.17,
		PaymentStatus:        domain.PaymentStatusPending,
		CreatedBy:            1,
	}
}

func bookingRows(b *domain.Booking) *sqlmock.Rows {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(columns).AddRow(
		b.ID.String(), b.BookingNumber, b.RoomID, b.Stay.Start, b.Stay.End, b.Nights,
		b.Guest.Name, b.Guest.Phone, b.Guest.Email, b.IsTourist,
		b.BasePricePerNight, b.PricePerNightWithVat, b.TotalPrice, b.VATRate,
		string(b.PaymentStatus), nil, "late arrival", b.CreatedBy, now, now,
	)
}

func TestNextBookingNumber(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT nextval('booking_number_seq')")).
		WillReturnRows(sqlmock.NewRows([]string{"nextval"}).AddRow(int64(1002)))

	n, err := repo.NextBookingNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1002), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	b := testBooking(t)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings (id,booking_number,room_id,check_in,check_out")).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	created, err := repo.Create(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, now, created.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ClassifiesDriverErrors(t *testing.T) {
	tests := []struct {
		code pq.ErrorCode
		want error
	}{
		{"23P01", ErrOverlap},
		{"40001", ErrConflict},
		{"40P01", ErrConflict},
		{"23505", ErrDuplicateNumber},
		{"42P01", ErrExecQuery},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			db, mock := newMock(t)
			repo := NewRepository(db)

			mock.ExpectQuery("INSERT INTO bookings").WillReturnError(&pq.Error{Code: tt.code})

			_, err := repo.Create(context.Background(), testBooking(t))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	b := testBooking(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = $1")).
		WithArgs(b.ID).
		WillReturnRows(bookingRows(b))

	got, err := repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, "2024-03-10..2024-03-13", got.Stay.String())
	assert.Equal(t, domain.PaymentStatusPending, got.PaymentStatus)
	assert.Nil(t, got.PaymentMethod)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "late arrival", *got.Notes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery("FROM bookings").WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByRoom_WindowAndLockInTransaction(t *testing.T) {
	db, mock := newMock(t)
	wrapped := dbmetrics.Wrap(db, nil, "test")
	repo := NewRepository(wrapped)
	b := testBooking(t)
	window, err := domain.ParseDateRange("2024-03-01", "2024-04-01")
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM bookings WHERE room_id = $1 AND check_in < $2 AND check_out > $3 AND payment_status <> $4 ORDER BY check_in ASC FOR UPDATE")).
		WithArgs(int64(7), window.End, window.Start, "canceled").
		WillReturnRows(bookingRows(b))
	mock.ExpectRollback()

	tx, err := wrapped.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	got, err := repo.GetByRoom(dbmetrics.WithTx(context.Background(), tx), domain.RoomBookingsFilter{RoomID: 7, Window: &window})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)

	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByRoom_NoLockInReadOnlyTransaction(t *testing.T) {
	db, mock := newMock(t)
	wrapped := dbmetrics.Wrap(db, nil, "test")
	repo := NewRepository(wrapped)
	tm := txmanager.NewTransactionManager(wrapped)
	window, err := domain.ParseDateRange("2024-03-01", "2024-04-01")
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM bookings WHERE room_id = $1 AND check_in < $2 AND check_out > $3 AND payment_status <> $4 ORDER BY check_in ASC") + "$").
		WithArgs(int64(7), window.End, window.Start, "canceled").
		WillReturnRows(sqlmock.NewRows(columns))
	mock.ExpectCommit()

	err = tm.DoReadOnly(context.Background(), func(ctx context.Context) error {
		_, err := repo.GetByRoom(ctx, domain.RoomBookingsFilter{RoomID: 7, Window: &window})
		return err
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByRoom_IncludeInactiveWithoutWindow(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE room_id = $1 ORDER BY check_in ASC")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(columns))

	got, err := repo.GetByRoom(context.Background(), domain.RoomBookingsFilter{RoomID: 7, IncludeInactive: true})
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	b := testBooking(t)
	now := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE bookings SET")).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	updated, err := repo.Update(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, now, updated.UpdatedAt)

	mock.ExpectQuery("UPDATE bookings SET").WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))
	_, err = repo.Update(context.Background(), b)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePayment(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET payment_status = $1, updated_at = NOW(), payment_method = $2 WHERE id = $3")).
		WithArgs("paid", "card", id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdatePayment(context.Background(), id, domain.PaymentStatusPaid, ptr.Ptr("card")))

	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdatePayment(context.Background(), id, domain.PaymentStatusPaid, nil), ErrBookingNotFound)

	assert.ErrorIs(t, repo.UpdatePayment(context.Background(), id, "refunded", nil), ErrInvalidStatus)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookings WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), id))

	mock.ExpectExec("DELETE FROM bookings").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), id), ErrBookingNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
