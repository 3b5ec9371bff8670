package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrOverlap возвращается, когда запись нарушила ограничение исключения по датам номера
	ErrOverlap = errors.New("booking.repository: stay overlaps another booking")

	// ErrConflict возвращается, когда postgres отменил запрос из-за конкурентной транзакции
	ErrConflict = errors.New("booking.repository: concurrent transaction conflict")

	// ErrDuplicateNumber возвращается при повторном использовании номера бронирования
	ErrDuplicateNumber = errors.New("booking.repository: duplicate booking number")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус оплаты
	ErrInvalidStatus = errors.New("booking.repository: invalid payment status")
)
