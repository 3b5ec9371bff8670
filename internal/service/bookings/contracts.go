package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
)

// RoomRepository интерфейс репозитория номеров
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetByRoom(ctx context.Context, filter domain.RoomBookingsFilter) ([]*domain.Booking, error)
	UpdatePayment(ctx context.Context, id uuid.UUID, status domain.PaymentStatus, method *string) error
}

// BlockedDateRepository интерфейс репозитория заблокированных дат
type BlockedDateRepository interface {
	GetByRoom(ctx context.Context, roomID int64, window *domain.DateRange) ([]*domain.BlockedDate, error)
	GetByReference(ctx context.Context, reference string) ([]*domain.BlockedDate, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
