package verify_booking

import (
	"fmt"
	"strings"
)

// maxBookingIDLength строки длиннее заведомо не являются идентификатором бронирования
const maxBookingIDLength = 128

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	req.BookingID = strings.TrimSpace(req.BookingID)

	if req.BookingID == "" {
		return fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	return nil
}
