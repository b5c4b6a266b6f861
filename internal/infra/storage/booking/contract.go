package booking

import (
	"context"

	"github.com/m04kA/SMC-CheckinService/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// TransactionManager выполняет функцию в сериализуемой транзакции
// (с повтором при конфликте сериализации)
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}
