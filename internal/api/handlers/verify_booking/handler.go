package verify_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-CheckinService/internal/api/handlers"
	"github.com/m04kA/SMC-CheckinService/internal/domain"
	verifyBooking "github.com/m04kA/SMC-CheckinService/internal/usecase/verify_booking"
)

const (
	msgInvalidRequest = "некорректное тело запроса"
	msgEmptyBookingID = "bookingId обязателен"
)

// maxLoggedIDLength длиннее в лог не пишем: токен приходит от клиента
const maxLoggedIDLength = 64

// Сообщения для экрана сканера
var reasonMessages = map[domain.VerifyReason]string{
	domain.ReasonConfirmed:        "Проход разрешен",
	domain.ReasonAlreadyScanned:   "Билет уже был отсканирован",
	domain.ReasonFutureBooking:    "Время бронирования еще не наступило",
	domain.ReasonNotFound:         "Бронирование не найдено",
	domain.ReasonStoreUnavailable: "Хранилище недоступно, повторите сканирование",
}

type Handler struct {
	useCase UseCase
	logger  Logger
}

func NewHandler(useCase UseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/verify
// Любая классификация билета возвращается с кодом 200, недоступность хранилища - 503
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/verify - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	res, err := h.useCase.Execute(r.Context(), &verifyBooking.Request{BookingID: req.BookingID})
	if err != nil {
		switch {
		case errors.Is(err, verifyBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgEmptyBookingID)

		case errors.Is(err, verifyBooking.ErrStoreUnavailable):
			h.logger.Error("POST /admin/verify - Store unavailable: %v", err)
			handlers.RespondJSON(w, http.StatusServiceUnavailable, &VerifyResponse{
				Valid:   false,
				Reason:  string(domain.ReasonStoreUnavailable),
				Message: reasonMessages[domain.ReasonStoreUnavailable],
			})

		default:
			h.logger.Error("POST /admin/verify - Failed to verify booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/verify - booking_id=%s, reason=%s", loggedID(req.BookingID), res.Reason)
	handlers.RespondJSON(w, http.StatusOK, toResponse(res))
}

func loggedID(id string) string {
	if len(id) <= maxLoggedIDLength {
		return id
	}
	return fmt.Sprintf("%s...(%d bytes)", id[:maxLoggedIDLength], len(id))
}
