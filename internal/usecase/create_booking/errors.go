package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается, когда поля не проходят проверку по схеме формы
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrSlotFull возвращается в режиме строгой вместимости, когда все места слота заняты
	ErrSlotFull = errors.New("create_booking: slot is full")

	// ErrStoreUnavailable возвращается при сбое хранилища; запрос можно повторить
	ErrStoreUnavailable = errors.New("create_booking: store unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
