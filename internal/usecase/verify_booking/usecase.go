package verify_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
	"github.com/m04kA/SMC-CheckinService/internal/infra/storage"
)

// UseCase проверка билета на входе и отметка о проходе
type UseCase struct {
	bookingRepo  BookingRepository
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case; metrics может быть nil
func NewUseCase(bookingRepo BookingRepository, metrics MetricsRecorder, logger Logger) *UseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &UseCase{
		bookingRepo:  bookingRepo,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute классифицирует отсканированный билет и при успехе отмечает проход.
//
// Шаги чтения (не найден, уже отсканирован, будущее бронирование) ничего не меняют.
// Единственная запись - условное обновление active -> scanned, поэтому
// подтверждение для одного бронирования может получить только один вызов.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("VerifyBooking: validation failed: %v", err)
		return nil, err
	}

	if len(req.BookingID) > maxBookingIDLength {
		uc.logger.Warn("VerifyBooking: rejected %d-character token", len(req.BookingID))
		return uc.result(&Response{Reason: domain.ReasonNotFound}), nil
	}

	now := uc.timeProvider.Now().Truncate(time.Millisecond)

	// 1. Поиск бронирования
	booking, err := uc.bookingRepo.Get(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			uc.logger.Warn("VerifyBooking: booking id=%s not found", req.BookingID)
			return uc.result(&Response{Reason: domain.ReasonNotFound}), nil
		}
		return nil, uc.storeUnavailable("get booking", req.BookingID, err)
	}

	// 2. Повторное сканирование
	if booking.IsScanned() {
		return uc.alreadyScanned(booking), nil
	}

	// 3. Время бронирования еще не наступило
	if booking.IsFutureAt(now) {
		uc.logger.Warn("VerifyBooking: booking id=%s is for %s, now %s",
			booking.ID, booking.SlotTime.Format(time.RFC3339), now.Format(time.RFC3339))
		return uc.result(&Response{Reason: domain.ReasonFutureBooking, Booking: booking}), nil
	}

	// 4. Условный переход active -> scanned
	marked, err := uc.bookingRepo.MarkScanned(ctx, booking.ID, now)
	if err != nil {
		return nil, uc.storeUnavailable("mark scanned", booking.ID, err)
	}

	if !marked {
		// Другой сканер успел раньше, перечитываем и отдаем его результат
		current, err := uc.bookingRepo.Get(ctx, booking.ID)
		if err != nil {
			return nil, uc.storeUnavailable("re-read booking", booking.ID, err)
		}
		if !current.IsScanned() {
			return nil, uc.storeUnavailable("re-read booking", booking.ID,
				fmt.Errorf("conditional update rejected but status is %s", current.Status))
		}
		return uc.alreadyScanned(current), nil
	}

	booking.Status = domain.StatusScanned
	booking.ScannedAt = &now

	uc.logger.Info("VerifyBooking: booking id=%s checked in at %s", booking.ID, now.Format(time.RFC3339))

	return uc.result(&Response{Valid: true, Reason: domain.ReasonConfirmed, Booking: booking}), nil
}

func (uc *UseCase) alreadyScanned(booking *domain.Booking) *Response {
	scannedAt := "unknown"
	if booking.ScannedAt != nil {
		scannedAt = booking.ScannedAt.Format(time.RFC3339)
	}
	uc.logger.Warn("VerifyBooking: booking id=%s already scanned at %s", booking.ID, scannedAt)

	return uc.result(&Response{
		Reason:    domain.ReasonAlreadyScanned,
		Booking:   booking,
		ScannedAt: booking.ScannedAt,
	})
}

func (uc *UseCase) result(resp *Response) *Response {
	uc.metrics.IncVerification(string(resp.Reason))
	return resp
}

func (uc *UseCase) storeUnavailable(op, id string, err error) error {
	uc.logger.Error("VerifyBooking: %s id=%s failed: %v", op, id, err)
	uc.metrics.IncVerification(string(domain.ReasonStoreUnavailable))
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}
