package check_availability

import "errors"

var (
	// ErrInvalidSettings возвращается, когда вместимость или длительность слота не положительные
	ErrInvalidSettings = errors.New("check_availability: invalid slot capacity settings")

	// ErrStoreUnavailable возвращается при сбое хранилища; запрос можно повторить
	ErrStoreUnavailable = errors.New("check_availability: store unavailable")
)
