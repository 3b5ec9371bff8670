package blocked_date

import "errors"

var (
	// ErrBlockedDateNotFound возвращается, когда блокировка не найдена
	ErrBlockedDateNotFound = errors.New("blocked_date.repository: blocked date not found")

	// ErrDuplicateReference возвращается, когда блокировка с таким external_reference уже есть
	ErrDuplicateReference = errors.New("blocked_date.repository: duplicate external reference")

	// ErrConflict возвращается, когда postgres отменил запрос из-за конкурентной транзакции
	ErrConflict = errors.New("blocked_date.repository: concurrent transaction conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("blocked_date.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("blocked_date.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("blocked_date.repository: failed to scan row")
)
