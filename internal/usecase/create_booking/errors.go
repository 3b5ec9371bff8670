package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FrontDeskService/internal/admission"
)

var (
	// ErrRoomNotFound возвращается, когда номер не найден
	ErrRoomNotFound = errors.New("create_booking: room not found")

	// ErrRoomUnavailable возвращается, когда даты пересекаются с другим активным бронированием
	ErrRoomUnavailable = errors.New("create_booking: room is unavailable for these dates")

	// ErrInvalidDates возвращается при некорректном диапазоне дат (0 ночей, выезд раньше заезда)
	ErrInvalidDates = errors.New("create_booking: invalid stay dates")

	// ErrMissingGuestInfo возвращается, когда не указаны имя или телефон гостя
	ErrMissingGuestInfo = errors.New("create_booking: guest name and phone are required")

	// ErrInvalidInput возвращается при некорректных входных данных (цены, статус, длина полей)
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrConflict возвращается, когда параллельная транзакция заняла номер раньше
	ErrConflict = errors.New("create_booking: concurrent booking conflict, retry")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// rejectionError переводит отказ допуска в ошибку use case
func rejectionError(rej *admission.Rejection) error {
	var sentinel error
	switch rej.Reason {
	case admission.ReasonRoomNotFound:
		sentinel = ErrRoomNotFound
	case admission.ReasonRoomUnavailable:
		sentinel = ErrRoomUnavailable
	case admission.ReasonInvalidDates:
		sentinel = ErrInvalidDates
	case admission.ReasonMissingGuestInfo:
		sentinel = ErrMissingGuestInfo
	case admission.ReasonInvalidInput:
		sentinel = ErrInvalidInput
	default:
		sentinel = ErrInternal
	}
	return fmt.Errorf("%w: %s", sentinel, rej.Message)
}
