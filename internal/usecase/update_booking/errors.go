package update_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FrontDeskService/internal/admission"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrRoomNotFound возвращается, когда новый номер не найден
	ErrRoomNotFound = errors.New("update_booking: room not found")

	// ErrRoomUnavailable возвращается, когда новые даты пересекаются с другим бронированием
	ErrRoomUnavailable = errors.New("update_booking: room is unavailable for these dates")

	// ErrInvalidDates возвращается при некорректном диапазоне дат
	ErrInvalidDates = errors.New("update_booking: invalid stay dates")

	// ErrMissingGuestInfo возвращается при попытке стереть имя гостя
	ErrMissingGuestInfo = errors.New("update_booking: guest name is required")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrConflict возвращается, когда параллельная транзакция изменила номер раньше
	ErrConflict = errors.New("update_booking: concurrent booking conflict, retry")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)

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
