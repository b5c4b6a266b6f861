package check_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
)

// UseCase считает загрузку слота
type UseCase struct {
	bookingRepo BookingRepository
	settings    SettingsProvider
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settings SettingsProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		settings:    settings,
		logger:      logger,
	}
}

// Execute загружает текущие настройки и проверяет доступность слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	settings, err := uc.settings.Current(ctx)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to load settings: %v", err)
		return nil, fmt.Errorf("%w: load settings: %v", ErrStoreUnavailable, err)
	}

	availability, err := uc.Check(ctx, req.SlotTime, settings.System)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		Available:    availability.Available,
		CurrentCount: availability.CurrentCount,
		Max:          availability.Max,
	}
	if req.SlotTime != nil {
		window := domain.NewSlotWindow(*req.SlotTime, settings.System)
		resp.SlotTime = &window.Start
		resp.SlotEnd = &window.End
	}

	return resp, nil
}

// Check считает бронирования в окне [slotTime, slotTime+slotDuration).
// Учитываются бронирования любого статуса. Без slotTime слот всегда доступен,
// хранилище при этом не опрашивается. Результат носит рекомендательный характер.
func (uc *UseCase) Check(ctx context.Context, slotTime *time.Time, settings domain.SystemSettings) (domain.Availability, error) {
	if slotTime == nil {
		return domain.Availability{Available: true, CurrentCount: 0, Max: settings.MaxBookingsPerSlot}, nil
	}

	if err := validateSettings(settings); err != nil {
		uc.logger.Error("CheckAvailability: %v", err)
		return domain.Availability{}, err
	}

	window := domain.NewSlotWindow(*slotTime, settings)

	count, err := uc.bookingRepo.CountInRange(ctx, window.Start, window.End)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to count bookings in [%s, %s): %v",
			window.Start.Format(time.RFC3339), window.End.Format(time.RFC3339), err)
		return domain.Availability{}, fmt.Errorf("%w: count bookings: %v", ErrStoreUnavailable, err)
	}

	availability := domain.NewAvailability(count, settings.MaxBookingsPerSlot)

	uc.logger.Info("CheckAvailability: slot=%s, %d/%d taken, available=%t",
		window.Start.Format(time.RFC3339), count, settings.MaxBookingsPerSlot, availability.Available)

	return availability, nil
}
