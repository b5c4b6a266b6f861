package get_booking_qr

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/m04kA/SMC-CheckinService/internal/api/handlers"
	"github.com/m04kA/SMC-CheckinService/internal/service/bookings"
)

// Размер картинки в пикселях
const (
	defaultSize = 256
	minSize     = 128
	maxSize     = 1024
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgInvalidSize      = "size должен быть от 128 до 1024"
	msgNotFound         = "бронирование не найдено"
)

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

// Handle GET /api/v1/bookings/{bookingId}/qr?size=256
// Содержимое QR-кода совпадает с ID бронирования, без подписи и срока действия
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	size := defaultSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < minSize || parsed > maxSize {
			handlers.RespondBadRequest(w, msgInvalidSize)
			return
		}
		size = parsed
	}

	booking, err := h.service.GetPublic(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id}/qr - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/{id}/qr - Failed to get booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	png, err := qrcode.Encode(booking.ID, qrcode.Medium, size)
	if err != nil {
		h.logger.Error("GET /bookings/{id}/qr - Failed to encode QR: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
