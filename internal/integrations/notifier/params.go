package notifier

import (
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
)

// bookingDateLayout формат даты в письме
const bookingDateLayout = "02.01.2006 15:04"

// defaultRecipientName используется, если в форме нет имени
const defaultRecipientName = "Guest"

// QRCodeURL ссылка на PNG с QR-кодом бронирования
func QRCodeURL(publicBaseURL, bookingID string) string {
	return strings.TrimRight(publicBaseURL, "/") + "/api/v1/bookings/" + url.PathEscape(bookingID) + "/qr"
}

// buildParams собирает параметры шаблона из бронирования
func buildParams(booking *domain.Booking, publicBaseURL string, loc *time.Location) (TemplateParams, error) {
	email, _ := booking.Fields.Get(domain.FieldNameEmail)
	if email == "" {
		return TemplateParams{}, ErrNoRecipient
	}

	name, _ := booking.Fields.Get(domain.FieldNameFullName)
	if name == "" {
		name = defaultRecipientName
	}

	date := ""
	if booking.SlotTime != nil {
		date = booking.SlotTime.In(loc).Format(bookingDateLayout)
	}

	return TemplateParams{
		ToName:      name,
		ToEmail:     email,
		BookingDate: date,
		BookingID:   booking.ID,
		QRCodeURL:   QRCodeURL(publicBaseURL, booking.ID),
	}, nil
}
