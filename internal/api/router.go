package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CheckinService/internal/api/middleware"
)

// Handlers обработчики всех маршрутов API
type Handlers struct {
	// Публичные
	CreateBooking     http.HandlerFunc
	CheckAvailability http.HandlerFunc
	GetBooking        http.HandlerFunc
	GetBookingQR      http.HandlerFunc
	GetForm           http.HandlerFunc
	Login             http.HandlerFunc

	// Администратор
	VerifyBooking  http.HandlerFunc
	ListBookings   http.HandlerFunc
	GetStats       http.HandlerFunc
	GetSettings    http.HandlerFunc
	UpdateSettings http.HandlerFunc
}

// Options инфраструктура роутера
type Options struct {
	TokenParser middleware.TokenParser
	Logger      middleware.Logger

	// Metrics nil отключает HTTP-метрики и endpoint
	Metrics        middleware.HTTPMetrics
	MetricsPath    string
	MetricsHandler http.Handler
}

// NewRouter собирает маршруты /api/v1
func NewRouter(h Handlers, opts Options) *mux.Router {
	r := mux.NewRouter()

	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
		if opts.MetricsHandler != nil {
			r.Handle(opts.MetricsPath, opts.MetricsHandler).Methods(http.MethodGet)
		}
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Схема формы и публичные настройки
	api.HandleFunc("/form", h.GetForm).Methods(http.MethodGet)

	// Свободные места в слоте
	api.HandleFunc("/availability", h.CheckAvailability).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", h.CreateBooking).Methods(http.MethodPost)

	// Поля бронирования по номеру с билета
	api.HandleFunc("/bookings/{bookingId}", h.GetBooking).Methods(http.MethodGet)

	// QR-код билета
	api.HandleFunc("/bookings/{bookingId}/qr", h.GetBookingQR).Methods(http.MethodGet)

	// Вход администратора
	api.HandleFunc("/admin/login", h.Login).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (Bearer JWT с ролью admin)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(opts.TokenParser, opts.Logger))

	// Проверка билета на входе
	admin.HandleFunc("/verify", h.VerifyBooking).Methods(http.MethodPost)

	// Список бронирований и статистика
	admin.HandleFunc("/bookings", h.ListBookings).Methods(http.MethodGet)
	admin.HandleFunc("/stats", h.GetStats).Methods(http.MethodGet)

	// Настройки формы и вместимости
	admin.HandleFunc("/settings", h.GetSettings).Methods(http.MethodGet)
	admin.HandleFunc("/settings", h.UpdateSettings).Methods(http.MethodPut)

	return r
}
