package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
	"github.com/m04kA/SMC-FrontDeskService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FrontDeskService/pkg/pgerr"
	"github.com/m04kA/SMC-FrontDeskService/pkg/psqlbuilder"
)

const bookingNumberSequence = "booking_number_seq"

var columns = []string{
	"id",
	"booking_number",
	"room_id",
	"check_in",
	"check_out",
	"nights",
	"guest_name",
	"guest_phone",
	"guest_email",
	"is_tourist",
	"base_price_per_night",
	"price_per_night_with_vat",
	"total_price",
	"vat_rate",
	"payment_status",
	"payment_method",
	"notes",
	"created_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// NextBookingNumber выдает следующий человекочитаемый номер бронирования из последовательности.
// Номер берется до вставки, чтобы им можно было подписать теневую блокировку.
func (r *Repository) NextBookingNumber(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(fmt.Sprintf("nextval('%s')", bookingNumberSequence)).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: NextBookingNumber - build query: %v", ErrBuildQuery, err)
	}

	var number int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&number); err != nil {
		return 0, fmt.Errorf("%w: NextBookingNumber - scan: %v", classify(err, ErrScanRow), err)
	}
	return number, nil
}

// Create создает бронирование с заранее сгенерированными ID и номером.
// Пересечение с другим активным бронированием номера отклоняется ограничением
// bookings_no_overlap и возвращается как ErrOverlap.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(columns[:len(columns)-2]...).
		Values(
			booking.ID,
			booking.BookingNumber,
			booking.RoomID,
			booking.Stay.Start,
			booking.Stay.End,
			booking.Nights,
			booking.Guest.Name,
			booking.Guest.Phone,
			booking.Guest.Email,
			booking.IsTourist,
			booking.BasePricePerNight,
			booking.PricePerNightWithVat,
			booking.TotalPrice,
			booking.VATRate,
			booking.PaymentStatus,
			booking.PaymentMethod,
			booking.Notes,
			booking.CreatedBy,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", classify(err, ErrExecQuery), err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time
	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"id": id.String()})

	// Внутри транзакции блокируем строку: дальше она будет изменена или удалена
	if dbmetrics.ShouldLockRows(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", classify(err, ErrScanRow), err)
	}

	return booking, nil
}

// GetByRoom получает бронирования номера, опционально пересекающиеся с окном дат.
// Внутри транзакции строки блокируются (FOR UPDATE).
func (r *Repository) GetByRoom(ctx context.Context, filter domain.RoomBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"room_id": filter.RoomID})

	if filter.Window != nil {
		builder = builder.
			Where(squirrel.Lt{"check_in": filter.Window.End}).
			Where(squirrel.Gt{"check_out": filter.Window.Start})
	}
	if !filter.IncludeInactive {
		builder = builder.Where(squirrel.NotEq{"payment_status": domain.PaymentStatusCanceled})
	}

	builder = builder.OrderBy("check_in ASC")
	if dbmetrics.ShouldLockRows(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRoom - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRoom - execute select: %v", classify(err, ErrExecQuery), err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByRoom - scan booking: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByRoom - iterate rows: %v", classify(err, ErrExecQuery), err)
	}

	return bookings, nil
}

// Update перезаписывает изменяемые поля бронирования после повторного допуска
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		SetMap(map[string]interface{}{
			"room_id":                  booking.RoomID,
			"check_in":                 booking.Stay.Start,
			"check_out":                booking.Stay.End,
			"nights":                   booking.Nights,
			"guest_name":               booking.Guest.Name,
			"guest_phone":              booking.Guest.Phone,
			"guest_email":              booking.Guest.Email,
			"is_tourist":               booking.IsTourist,
			"base_price_per_night":     booking.BasePricePerNight,
			"price_per_night_with_vat": booking.PricePerNightWithVat,
			"total_price":              booking.TotalPrice,
			"vat_rate":                 booking.VATRate,
			"payment_status":           booking.PaymentStatus,
			"payment_method":           booking.PaymentMethod,
			"notes":                    booking.Notes,
			"updated_at":               squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": booking.ID.String()}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", classify(err, ErrExecQuery), err)
	}

	booking.UpdatedAt = updatedAt
	return booking, nil
}

// UpdatePayment меняет статус и (опционально) способ оплаты
func (r *Repository) UpdatePayment(ctx context.Context, id uuid.UUID, status domain.PaymentStatus, method *string) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("bookings").
		Set("payment_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id.String()})
	if method != nil {
		builder = builder.Set("payment_method", *method)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - execute update: %v", classify(err, ErrExecQuery), err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Delete удаляет бронирование (отмена - жесткое удаление)
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", classify(err, ErrExecQuery), err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// classify переводит ошибку драйвера в ошибку репозитория, fallback - для прочих ошибок
func classify(err error, fallback error) error {
	var pqErr *pq.Error
	switch {
	case errors.As(err, &pqErr) && pqErr.Code == pgerr.CodeExclusionViolation:
		return ErrOverlap
	case pgerr.IsConcurrencyConflict(err):
		return ErrConflict
	case pgerr.IsUniqueViolation(err):
		return ErrDuplicateNumber
	default:
		return fallback
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(s scanner) (*domain.Booking, error) {
	var (
		b                    domain.Booking
		checkIn, checkOut    time.Time
		createdAt, updatedAt sql.NullTime
	)

	err := s.Scan(
		&b.ID,
		&b.BookingNumber,
		&b.RoomID,
		&checkIn,
		&checkOut,
		&b.Nights,
		&b.Guest.Name,
		&b.Guest.Phone,
		&b.Guest.Email,
		&b.IsTourist,
		&b.BasePricePerNight,
		&b.PricePerNightWithVat,
		&b.TotalPrice,
		&b.VATRate,
		&b.PaymentStatus,
		&b.PaymentMethod,
		&b.Notes,
		&b.CreatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Stay, err = domain.NewDateRange(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return &b, nil
}
