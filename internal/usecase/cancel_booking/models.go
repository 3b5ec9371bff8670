package cancel_booking

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID   uuid.UUID
	CancelledBy int64
}

// Response результат отмены
type Response struct {
	BookingID     uuid.UUID
	BookingNumber int64
	RoomID        int64
	CheckIn       time.Time
	CheckOut      time.Time

	// Fee сумма к удержанию: 0 при отмене до дедлайна, иначе полная стоимость
	Fee                   float64
	FreeCancellationUntil time.Time
	ReleasedBlocks        int64
	CancelledAt           time.Time
}
