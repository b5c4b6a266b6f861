package verify_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
)

// BookingRepository интерфейс хранилища бронирований
type BookingRepository interface {
	Get(ctx context.Context, id string) (*domain.Booking, error)

	// MarkScanned переводит active -> scanned атомарно; false, если бронирование уже не active
	MarkScanned(ctx context.Context, id string, scannedAt time.Time) (bool, error)
}

// MetricsRecorder счетчик результатов проверки
type MetricsRecorder interface {
	IncVerification(reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type noopMetrics struct{}

func (noopMetrics) IncVerification(string) {}
