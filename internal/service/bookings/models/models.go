package models

import (
	"errors"
	"time"

	"github.com/samber/lo"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest фильтры списка бронирований для администратора
type ListBookingsRequest struct {
	Date   *string // Дата слота "2006-01-02" (опционально)
	Status *string // active | scanned (опционально)
	Search string  // Поиск по имени и email (опционально)
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        string        `json:"id"`
	Fields    domain.Fields `json:"fields"`
	SlotTime  *time.Time    `json:"slotTime,omitempty"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	ScannedAt *time.Time    `json:"scannedAt,omitempty"`
}

// PublicBookingResponse только отправленные поля, для повторного заполнения формы по номеру
type PublicBookingResponse struct {
	ID     string        `json:"id"`
	Fields domain.Fields `json:"fields"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// StatsResponse счетчики для панели администратора
type StatsResponse struct {
	Total        int `json:"total"`
	CreatedToday int `json:"createdToday"`
	ScannedToday int `json:"scannedToday"`
	Pending      int `json:"pending"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	fields := b.Fields
	if fields == nil {
		fields = domain.Fields{}
	}

	return &BookingResponse{
		ID:        b.ID,
		Fields:    fields,
		SlotTime:  b.SlotTime,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		ScannedAt: b.ScannedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	return &BookingListResponse{
		Bookings: lo.Map(bookings, func(b *domain.Booking, _ int) BookingResponse {
			return *FromDomainBooking(b)
		}),
		Total: len(bookings),
	}
}

// FromDomainStats конвертирует статистику в DTO
func FromDomainStats(s *domain.BookingStats) *StatsResponse {
	return &StatsResponse{
		Total:        s.Total,
		CreatedToday: s.CreatedToday,
		ScannedToday: s.ScannedToday,
		Pending:      s.Pending,
	}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
