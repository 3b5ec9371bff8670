package notificationservice

import "errors"

var (
	// ErrDisabled возвращается, когда URL сервиса уведомлений не настроен
	ErrDisabled = errors.New("notificationservice client: disabled")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notificationservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("notificationservice client: invalid response")

	// ErrRejected возвращается, когда сервис отклонил уведомление (4xx)
	ErrRejected = errors.New("notificationservice client: notification rejected")
)
