package get_booking_qr

import (
	"context"

	"github.com/m04kA/SMC-CheckinService/internal/service/bookings/models"
)

type BookingService interface {
	GetPublic(ctx context.Context, id string) (*models.PublicBookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
