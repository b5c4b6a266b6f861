package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
	"github.com/m04kA/SMC-CheckinService/internal/infra/storage"
)

// notificationWarning текст предупреждения, когда подтверждение не отправлено
const notificationWarning = "booking saved, but the confirmation could not be delivered"

// defaultNotifyTimeout верхняя граница ожидания отправки подтверждения
const defaultNotifyTimeout = 15 * time.Second

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	availability AvailabilityChecker
	settings     SettingsProvider
	notifier     Notifier
	metrics      MetricsRecorder
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger

	notifyTimeout time.Duration
}

// NewUseCase создает новый экземпляр use case.
// location используется для значений даты без смещения; metrics может быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	availability AvailabilityChecker,
	settings SettingsProvider,
	notifier Notifier,
	metrics MetricsRecorder,
	location *time.Location,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if location == nil {
		location = time.UTC
	}

	return &UseCase{
		bookingRepo:  bookingRepo,
		availability: availability,
		settings:     settings,
		notifier:     notifier,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,

		notifyTimeout: defaultNotifyTimeout,
	}
}

// Execute выполняет use case создания бронирования.
// Порядок: проверка доступности (рекомендательная), сохранение, отправка подтверждения.
// Ошибка отправки не откатывает бронирование и возвращается как предупреждение.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Текущие настройки формы и вместимости
	settings, err := uc.settings.Current(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to load settings: %v", err)
		return nil, fmt.Errorf("%w: load settings: %v", ErrStoreUnavailable, err)
	}

	// 2. Валидация полей по схеме формы
	fields, err := normalizeFields(req.Fields, settings.Form)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}
	if err := validateFields(fields, settings.Form, uc.location); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	slotTime, err := slotTimeFromFields(fields, settings, uc.location)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 3. Проверка доступности слота. В рекомендательном режиме сбой подсчета не мешает сохранению
	availability, err := uc.availability.Check(ctx, slotTime, settings.System)
	if err != nil {
		if settings.System.EnforceSlotCapacity {
			uc.logger.Error("CreateBooking: availability check failed: %v", err)
			return nil, fmt.Errorf("%w: availability check: %v", ErrStoreUnavailable, err)
		}
		uc.logger.Error("CreateBooking: availability check failed, continuing in advisory mode: %v", err)
		availability = domain.Availability{Available: true, Max: settings.System.MaxBookingsPerSlot}
	}
	if !availability.Available {
		uc.logger.Warn("CreateBooking: slot is over capacity, %d/%d taken, enforce=%t",
			availability.CurrentCount, availability.Max, settings.System.EnforceSlotCapacity)
	}

	// 4. Сохранение
	booking := &domain.Booking{
		Fields:    fields,
		SlotTime:  slotTime,
		Status:    domain.StatusActive,
		CreatedAt: uc.timeProvider.Now().Truncate(time.Millisecond),
	}

	created, err := uc.save(ctx, booking, settings.System)
	if err != nil {
		return nil, err
	}

	uc.metrics.IncBookingCreated(availability.Available)
	uc.logger.Info("CreateBooking: successfully created booking id=%s", created.ID)

	resp := &Response{
		ID:           created.ID,
		Fields:       created.Fields,
		SlotTime:     created.SlotTime,
		Status:       string(created.Status),
		CreatedAt:    created.CreatedAt,
		Availability: availability,
	}

	// 5. Подтверждение. Бронирование уже сохранено, отмена клиентского запроса его не прерывает
	if !settings.System.EmailNotifications {
		uc.metrics.IncNotification(NotificationSkipped)
		return resp, nil
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.notifyTimeout)
	defer cancel()

	if err := uc.notifier.Send(sendCtx, created); err != nil {
		uc.logger.Warn("CreateBooking: failed to send confirmation for booking id=%s: %v", created.ID, err)
		uc.metrics.IncNotification(NotificationFailed)
		warning := notificationWarning
		resp.NotificationWarning = &warning
		return resp, nil
	}

	uc.metrics.IncNotification(NotificationSent)
	return resp, nil
}

// save сохраняет бронирование; в режиме строгой вместимости подсчет и вставка атомарны
func (uc *UseCase) save(ctx context.Context, booking *domain.Booking, system domain.SystemSettings) (*domain.Booking, error) {
	var (
		created *domain.Booking
		err     error
	)

	if system.EnforceSlotCapacity && booking.SlotTime != nil {
		window := domain.NewSlotWindow(*booking.SlotTime, system)
		created, err = uc.bookingRepo.CreateWithinCapacity(ctx, booking, window, system.MaxBookingsPerSlot)
	} else {
		created, err = uc.bookingRepo.Create(ctx, booking)
	}

	if err != nil {
		if errors.Is(err, storage.ErrSlotFull) {
			uc.logger.Warn("CreateBooking: slot %s is full", booking.SlotTime.Format(time.RFC3339))
			return nil, ErrSlotFull
		}
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: create booking: %v", ErrStoreUnavailable, err)
	}

	return created, nil
}
