package check_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CheckinService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-CheckinService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-CheckinService/pkg/types"
)

const (
	msgInvalidSlotTime  = "некорректный формат slotTime, ожидается YYYY-MM-DD или YYYY-MM-DDTHH:MM"
	msgStoreUnavailable = "хранилище временно недоступно, повторите попытку"
)

type Handler struct {
	useCase  CheckAvailabilityUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/availability?slotTime=2025-10-15T10:00
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &checkAvailability.Request{}

	if raw := r.URL.Query().Get("slotTime"); raw != "" {
		slotTime, _, err := types.ParseDateTime(raw, h.location)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid slotTime=%s: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidSlotTime)
			return
		}
		req.SlotTime = &slotTime
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		if errors.Is(err, checkAvailability.ErrStoreUnavailable) {
			h.logger.Error("GET /availability - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)
			return
		}
		h.logger.Error("GET /availability - Failed to check availability: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
