package admin

import "time"

// TokenIssuer выпускает access-токены
type TokenIssuer interface {
	IssueToken(subject, role, email string) (string, time.Time, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
