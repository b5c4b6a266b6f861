package check_availability

import (
	"fmt"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
)

// validateSettings проверяет, что по настройкам можно посчитать окно и вместимость
func validateSettings(settings domain.SystemSettings) error {
	if settings.MaxBookingsPerSlot <= 0 {
		return fmt.Errorf("%w: maxBookingsPerSlot must be positive", ErrInvalidSettings)
	}

	if settings.SlotDurationMinutes <= 0 {
		return fmt.Errorf("%w: slotDurationMinutes must be positive", ErrInvalidSettings)
	}

	return nil
}
