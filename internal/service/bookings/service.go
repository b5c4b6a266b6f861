package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
	"github.com/m04kA/SMC-CheckinService/internal/infra/storage"
	"github.com/m04kA/SMC-CheckinService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CheckinService/pkg/types"
)

// Service сервис для чтения бронирований
type Service struct {
	bookingRepo  BookingRepository
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований.
// location задает границы суток для фильтра по дате и статистики.
func NewService(bookingRepo BookingRepository, location *time.Location, logger Logger) *Service {
	if location == nil {
		location = time.UTC
	}

	return &Service{
		bookingRepo:  bookingRepo,
		location:     location,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// GetPublic возвращает только отправленные поля бронирования.
// Используется для повторного заполнения формы по номеру с бумажного билета.
func (s *Service) GetPublic(ctx context.Context, id string) (*models.PublicBookingResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			s.logger.Warn("GetPublic: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetPublic: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetPublic - repository error: %v", ErrInternal, err)
	}

	return &models.PublicBookingResponse{
		ID:     booking.ID,
		Fields: models.FromDomainBooking(booking).Fields,
	}, nil
}

// List возвращает бронирования с фильтрацией по дате слота, статусу и поиску
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter := domain.BookingsFilter{Search: strings.TrimSpace(req.Search)}

	if req.Date != nil && *req.Date != "" {
		day, _, err := types.ParseDateTime(*req.Date, s.location)
		if err != nil {
			s.logger.Warn("List: invalid date=%s: %v", *req.Date, err)
			return nil, fmt.Errorf("%w: invalid date", ErrInvalidInput)
		}
		from, to := types.DayRange(day)
		filter.SlotFrom = &from
		filter.SlotTo = &to
	}

	if req.Status != nil && *req.Status != "" {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("List: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Stats возвращает счетчики за текущие сутки
func (s *Service) Stats(ctx context.Context) (*models.StatsResponse, error) {
	dayStart, dayEnd := types.DayRange(s.timeProvider.Now().In(s.location))

	stats, err := s.bookingRepo.Stats(ctx, dayStart, dayEnd)
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStats(stats), nil
}
