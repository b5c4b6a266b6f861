package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
	"github.com/m04kA/SMC-CheckinService/internal/infra/storage"
)

// BookingStore хранилище бронирований в памяти процесса.
// Используется для локального запуска и тестов.
type BookingStore struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking
}

// NewBookingStore создает пустое хранилище
func NewBookingStore() *BookingStore {
	return &BookingStore{bookings: make(map[string]*domain.Booking)}
}

func (s *BookingStore) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insertLocked(booking)
}

func (s *BookingStore) Get(ctx context.Context, id string) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, storage.ErrBookingNotFound
	}
	return b.Clone(), nil
}

// MarkScanned переводит бронирование в scanned, только если оно active
func (s *BookingStore) MarkScanned(ctx context.Context, id string, scannedAt time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok || b.Status != domain.StatusActive {
		return false, nil
	}

	b.Status = domain.StatusScanned
	b.ScannedAt = &scannedAt
	return true, nil
}

func (s *BookingStore) CountInRange(ctx context.Context, start, end time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.countLocked(domain.SlotWindow{Start: start, End: end}), nil
}

// CreateWithinCapacity проверяет заполненность и вставляет под одной блокировкой
func (s *BookingStore) CreateWithinCapacity(ctx context.Context, booking *domain.Booking, window domain.SlotWindow, max int) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.countLocked(window) >= max {
		return nil, storage.ErrSlotFull
	}
	return s.insertLocked(booking)
}

func (s *BookingStore) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if storage.MatchesFilter(b, filter) {
			result = append(result, b.Clone())
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (s *BookingStore) Stats(ctx context.Context, dayStart, dayEnd time.Time) (*domain.BookingStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	day := domain.SlotWindow{Start: dayStart, End: dayEnd}
	stats := &domain.BookingStats{Total: len(s.bookings)}
	for _, b := range s.bookings {
		if day.Contains(b.CreatedAt) {
			stats.CreatedToday++
		}
		if b.ScannedAt != nil && day.Contains(*b.ScannedAt) {
			stats.ScannedToday++
		}
		if b.Status == domain.StatusActive {
			stats.Pending++
		}
	}

	return stats, nil
}

func (s *BookingStore) insertLocked(booking *domain.Booking) (*domain.Booking, error) {
	if err := storage.CheckInsert(booking); err != nil {
		return nil, err
	}
	created := booking.Clone()
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	if _, exists := s.bookings[created.ID]; exists {
		return nil, storage.ErrBookingExists
	}

	s.bookings[created.ID] = created
	return created.Clone(), nil
}

func (s *BookingStore) countLocked(window domain.SlotWindow) int {
	count := 0
	for _, b := range s.bookings {
		if b.SlotTime != nil && window.Contains(*b.SlotTime) {
			count++
		}
	}
	return count
}
