package admin

import "errors"

var (
	// ErrInvalidInput возвращается при пустых email или пароле
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidCredentials возвращается при неверной паре email и пароль
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("service: internal error")
)
