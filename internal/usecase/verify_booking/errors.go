package verify_booking

import "errors"

var (
	// ErrInvalidInput возвращается для пустого идентификатора
	ErrInvalidInput = errors.New("verify_booking: invalid input data")

	// ErrStoreUnavailable возвращается при сбое чтения или обновления; запрос можно повторить.
	// Повтор безопасен: обновление выполняется только из статуса active.
	ErrStoreUnavailable = errors.New("verify_booking: store unavailable")
)
