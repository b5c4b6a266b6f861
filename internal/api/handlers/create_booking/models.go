package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
	"github.com/m04kA/SMC-CheckinService/internal/integrations/notifier"
	createBooking "github.com/m04kA/SMC-CheckinService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Fields domain.Fields `json:"fields"` // {"fullName": "...", "email": "...", "date": "2025-10-15T10:00"}
}

// AvailabilityResponse загрузка слота на момент бронирования
type AvailabilityResponse struct {
	Available    bool `json:"available"`
	CurrentCount int  `json:"currentCount"`
	Max          int  `json:"max"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                  string               `json:"id"`
	Fields              domain.Fields        `json:"fields"`
	SlotTime            *string              `json:"slotTime,omitempty"`
	Status              string               `json:"status"`
	CreatedAt           string               `json:"createdAt"`
	QRCodeURL           string               `json:"qrCodeUrl"`
	Availability        AvailabilityResponse `json:"availability"`
	NotificationWarning *string              `json:"notificationWarning,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{Fields: r.Fields}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response, publicBaseURL string) *BookingResponse {
	out := &BookingResponse{
		ID:        resp.ID,
		Fields:    resp.Fields,
		Status:    resp.Status,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		QRCodeURL: notifier.QRCodeURL(publicBaseURL, resp.ID),
		Availability: AvailabilityResponse{
			Available:    resp.Availability.Available,
			CurrentCount: resp.Availability.CurrentCount,
			Max:          resp.Availability.Max,
		},
		NotificationWarning: resp.NotificationWarning,
	}

	if resp.SlotTime != nil {
		slot := resp.SlotTime.Format(time.RFC3339)
		out.SlotTime = &slot
	}

	return out
}
