package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrRoomNotFound возвращается, когда номер не найден
	ErrRoomNotFound = errors.New("bookings: room not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInvalidDates возвращается при некорректном диапазоне дат
	ErrInvalidDates = errors.New("bookings: invalid date range")

	// ErrAlreadyCanceled возвращается при попытке изменить оплату отменённого бронирования
	ErrAlreadyCanceled = errors.New("bookings: booking is canceled")

	// ErrConflict возвращается, когда параллельная транзакция изменила данные
	ErrConflict = errors.New("bookings: concurrent modification, retry")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
