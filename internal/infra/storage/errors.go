package storage

import "errors"

// Ошибки, общие для всех реализаций хранилища.
// Use case'ы сравнивают ошибки только с ними и не зависят от конкретного драйвера.
var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("storage: booking not found")

	// ErrBookingExists возвращается при повторной вставке бронирования с тем же ID
	ErrBookingExists = errors.New("storage: booking already exists")

	// ErrSlotFull возвращается, когда слот уже заполнен при проверке вместимости
	ErrSlotFull = errors.New("storage: slot is full")

	// ErrInvalidBooking возвращается при вставке бронирования с несогласованным статусом
	ErrInvalidBooking = errors.New("storage: invalid booking")

	// ErrSettingsNotFound возвращается, когда настройки еще не сохранялись
	ErrSettingsNotFound = errors.New("storage: settings not found")
)
