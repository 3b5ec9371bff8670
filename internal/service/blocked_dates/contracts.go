package blocked_dates

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
)

// RoomRepository интерфейс репозитория номеров
type RoomRepository interface {
	LockByID(ctx context.Context, id int64) (*domain.Room, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByRoom(ctx context.Context, filter domain.RoomBookingsFilter) ([]*domain.Booking, error)
}

// BlockedDateRepository интерфейс репозитория заблокированных дат
type BlockedDateRepository interface {
	Create(ctx context.Context, block *domain.BlockedDate) (*domain.BlockedDate, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BlockedDate, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
