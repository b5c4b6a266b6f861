package create_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-CheckinService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-CheckinService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingFields      = "не переданы поля формы"
	msgValidationFailed   = "поля формы заполнены некорректно"
	msgSlotFull           = "все места на выбранное время заняты"
	msgStoreUnavailable   = "хранилище временно недоступно, повторите попытку"
)

type Handler struct {
	useCase       CreateBookingUseCase
	publicBaseURL string
	logger        Logger
}

func NewHandler(useCase CreateBookingUseCase, publicBaseURL string, logger Logger) *Handler {
	return &Handler{
		useCase:       useCase,
		publicBaseURL: publicBaseURL,
		logger:        logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if len(req.Fields) == 0 {
		h.logger.Warn("POST /bookings - Empty fields")
		handlers.RespondBadRequest(w, msgMissingFields)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgValidationFailed+": "+validationDetail(err))

		case errors.Is(err, createBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings - Slot is full")
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, createBooking.ErrStoreUnavailable):
			h.logger.Error("POST /bookings - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, slot_available=%t",
		result.ID, result.Availability.Available)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, h.publicBaseURL))
}

// validationDetail оставляет из ошибки только описание поля
func validationDetail(err error) string {
	return strings.TrimPrefix(err.Error(), createBooking.ErrInvalidInput.Error()+": ")
}
