package verify_booking

import (
	"time"

	"github.com/m04kA/SMC-CheckinService/internal/service/bookings/models"
	verifyBooking "github.com/m04kA/SMC-CheckinService/internal/usecase/verify_booking"
)

// VerifyRequest тело запроса со строкой, считанной из QR-кода
type VerifyRequest struct {
	BookingID string `json:"bookingId"`
}

// VerifyResponse результат проверки билета
type VerifyResponse struct {
	Valid     bool                    `json:"valid"`
	Reason    string                  `json:"reason"`
	Message   string                  `json:"message,omitempty"`
	Booking   *models.BookingResponse `json:"booking,omitempty"`
	ScannedAt *time.Time              `json:"scannedAt,omitempty"`
}

func toResponse(res *verifyBooking.Response) *VerifyResponse {
	return &VerifyResponse{
		Valid:     res.Valid,
		Reason:    string(res.Reason),
		Message:   reasonMessages[res.Reason],
		Booking:   models.FromDomainBooking(res.Booking),
		ScannedAt: res.ScannedAt,
	}
}
