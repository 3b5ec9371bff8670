package update_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
)

// Request частичное изменение бронирования: nil - поле не меняется
type Request struct {
	BookingID uuid.UUID
	UpdatedBy int64

	RoomID   *int64
	CheckIn  *time.Time
	CheckOut *time.Time

	GuestName  *string
	GuestPhone *string
	GuestEmail *string
	IsTourist  *bool

	BasePricePerNight *float64
	TotalPrice        *float64

	PaymentStatus *domain.PaymentStatus
	PaymentMethod *string
	Notes         *string
}

// Response модель ответа с измененным бронированием
type Response struct {
	Booking        *domain.Booking
	ReleasedBlocks []*domain.BlockedDate
	ShadowBlock    *domain.BlockedDate

	// Repriced цена пересчитана (изменились ночи, статус туриста или цена)
	Repriced bool
}
