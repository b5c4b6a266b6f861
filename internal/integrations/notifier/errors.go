package notifier

import "errors"

var (
	// ErrNoRecipient возвращается, когда в бронировании нет email
	ErrNoRecipient = errors.New("notifier: booking has no recipient email")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifier client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе почтового сервиса
	ErrInvalidResponse = errors.New("notifier client: invalid response")
)
