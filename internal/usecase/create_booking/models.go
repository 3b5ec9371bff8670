package create_booking

import (
	"time"

	"github.com/m04kA/SMC-FrontDeskService/internal/admission"
	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	RoomID    int64
	CheckIn   time.Time
	CheckOut  time.Time
	Guest     domain.Guest
	IsTourist bool

	BasePricePerNight *float64 // цена без НДС за ночь (опционально, иначе тариф номера)
	TotalPrice        *float64 // итог, введенный оператором (опционально, приоритетнее цены за ночь)

	PaymentStatus domain.PaymentStatus // пусто = pending
	PaymentMethod *string
	Notes         *string
	CreatedBy     int64 // ID сотрудника (X-User-ID)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking

	// ReleasedBlocks блокировки, снятые ради этого бронирования
	ReleasedBlocks []*domain.BlockedDate

	// ShadowBlock блокировка, резервирующая даты бронирования
	ShadowBlock *domain.BlockedDate

	Warnings []admission.Warning
}
