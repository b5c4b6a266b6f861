package storage

import (
	"fmt"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
)

// CheckInsert проверяет бронирование перед вставкой: статус известен,
// а время сканирования задано тогда и только тогда, когда статус scanned.
func CheckInsert(booking *domain.Booking) error {
	if !booking.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidBooking, booking.Status)
	}
	scanned := booking.Status == domain.StatusScanned
	if scanned && booking.ScannedAt == nil {
		return fmt.Errorf("%w: scanned booking without scannedAt", ErrInvalidBooking)
	}
	if !scanned && booking.ScannedAt != nil {
		return fmt.Errorf("%w: active booking with scannedAt", ErrInvalidBooking)
	}
	return nil
}
