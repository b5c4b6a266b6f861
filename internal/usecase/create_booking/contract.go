package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CreateWithinCapacity(ctx context.Context, booking *domain.Booking, window domain.SlotWindow, max int) (*domain.Booking, error)
}

// AvailabilityChecker считает загрузку слота
type AvailabilityChecker interface {
	Check(ctx context.Context, slotTime *time.Time, settings domain.SystemSettings) (domain.Availability, error)
}

// SettingsProvider источник текущих настроек формы и системы
type SettingsProvider interface {
	Current(ctx context.Context) (*domain.Settings, error)
}

// Notifier отправляет подтверждение бронирования
type Notifier interface {
	Send(ctx context.Context, booking *domain.Booking) error
}

// MetricsRecorder счетчики бизнес-метрик
type MetricsRecorder interface {
	IncBookingCreated(slotAvailable bool)
	IncNotification(outcome string)
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

func (noopMetrics) IncBookingCreated(bool) {}
func (noopMetrics) IncNotification(string) {}
