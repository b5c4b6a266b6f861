package notifier

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
)

// LogNotifier пишет подтверждение в лог вместо отправки.
// Используется для локального запуска без почтового сервиса.
type LogNotifier struct {
	publicBaseURL string
	location      *time.Location
	log           Logger
}

// NewLogNotifier создает notifier, который только логирует
func NewLogNotifier(publicBaseURL string, location *time.Location, log Logger) *LogNotifier {
	if location == nil {
		location = time.UTC
	}
	return &LogNotifier{publicBaseURL: publicBaseURL, location: location, log: log}
}

func (n *LogNotifier) Send(ctx context.Context, booking *domain.Booking) error {
	params, err := buildParams(booking, n.publicBaseURL, n.location)
	if err != nil {
		return err
	}

	n.log.Info("Confirmation for booking id=%s to %s <%s>, date=%q, qr=%s",
		params.BookingID, params.ToName, params.ToEmail, params.BookingDate, params.QRCodeURL)
	return nil
}
