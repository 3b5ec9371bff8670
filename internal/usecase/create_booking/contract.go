package create_booking

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
	NextBookingNumber(ctx context.Context) (int64, error)
	GetByRoom(ctx context.Context, filter domain.RoomBookingsFilter) ([]*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// BlockedDateRepository интерфейс репозитория заблокированных дат
type BlockedDateRepository interface {
	GetByRoom(ctx context.Context, roomID int64, window *domain.DateRange) ([]*domain.BlockedDate, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
	UpsertShadow(ctx context.Context, block *domain.BlockedDate) (*domain.BlockedDate, error)
}

// NotificationClient интерфейс клиента сервиса уведомлений
type NotificationClient interface {
	SendBookingConfirmation(ctx context.Context, booking *domain.Booking, room *domain.Room) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder доменные метрики бронирований
type MetricsRecorder interface {
	ObserveAdmission(outcome string)
	ObserveOverride(source string)
	ObserveNotificationFailure()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
