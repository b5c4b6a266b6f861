package list_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CheckinService/internal/api/handlers"
	"github.com/m04kA/SMC-CheckinService/internal/service/bookings"
	"github.com/m04kA/SMC-CheckinService/internal/service/bookings/models"
)

const msgInvalidFilter = "некорректный фильтр: date в формате YYYY-MM-DD, status active или scanned"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings?date=2026-03-14&status=active&search=ann
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListBookingsRequest{Search: query.Get("search")}
	if date := query.Get("date"); date != "" {
		req.Date = &date
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	resp, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /admin/bookings - Failed to list bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
