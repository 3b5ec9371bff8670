package blocked_dates

import "errors"

var (
	// ErrBlockedDateNotFound возвращается, когда блокировка не найдена
	ErrBlockedDateNotFound = errors.New("blocked_dates: blocked date not found")

	// ErrRoomNotFound возвращается, когда номер не найден
	ErrRoomNotFound = errors.New("blocked_dates: room not found")

	// ErrInvalidDates возвращается при некорректном диапазоне дат
	ErrInvalidDates = errors.New("blocked_dates: invalid date range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("blocked_dates: invalid input data")

	// ErrOverlapsBooking возвращается, когда даты заняты активным бронированием
	ErrOverlapsBooking = errors.New("blocked_dates: dates overlap an active booking")

	// ErrShadowBlock возвращается при попытке удалить блокировку бронирования напрямую
	ErrShadowBlock = errors.New("blocked_dates: block belongs to a booking, cancel the booking instead")

	// ErrDuplicateReference возвращается, когда блокировка с такой внешней ссылкой уже есть
	ErrDuplicateReference = errors.New("blocked_dates: external reference already exists")

	// ErrConflict возвращается, когда параллельная транзакция изменила данные
	ErrConflict = errors.New("blocked_dates: concurrent modification, retry")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("blocked_dates: internal error")
)
