package redisstore

import "errors"

var (
	// ErrExecCommand возвращается при ошибке выполнения команды Redis
	ErrExecCommand = errors.New("redisstore: failed to execute command")

	// ErrDecode возвращается, когда сохраненные данные не удалось разобрать
	ErrDecode = errors.New("redisstore: failed to decode stored value")

	// ErrEncode возвращается, когда данные не удалось сериализовать
	ErrEncode = errors.New("redisstore: failed to encode value")
)
