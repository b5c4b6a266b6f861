package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
)

// BookingRepository интерфейс хранилища бронирований
type BookingRepository interface {
	// CountInRange считает бронирования любого статуса со слотом в [start, end)
	CountInRange(ctx context.Context, start, end time.Time) (int, error)
}

// SettingsProvider источник текущих настроек (с учетом значений по умолчанию)
type SettingsProvider interface {
	Current(ctx context.Context) (*domain.Settings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
