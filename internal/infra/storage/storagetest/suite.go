// Package storagetest содержит общий набор проверок для всех реализаций хранилища бронирований.
package storagetest

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
	"github.com/m04kA/SMC-CheckinService/internal/infra/storage"
	"github.com/m04kA/SMC-CheckinService/pkg/ptr"
)

// BookingStore контракт хранилища бронирований
type BookingStore interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Get(ctx context.Context, id string) (*domain.Booking, error)
	MarkScanned(ctx context.Context, id string, scannedAt time.Time) (bool, error)
	CountInRange(ctx context.Context, start, end time.Time) (int, error)
	CreateWithinCapacity(ctx context.Context, booking *domain.Booking, window domain.SlotWindow, max int) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Stats(ctx context.Context, dayStart, dayEnd time.Time) (*domain.BookingStats, error)
}

// SettingsStore контракт хранилища настроек
type SettingsStore interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Save(ctx context.Context, settings *domain.Settings) (*domain.Settings, error)
}

// base время с точностью до миллисекунд: Redis хранит время именно так
var base = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newBooking(slot *time.Time, createdAt time.Time) *domain.Booking {
	return &domain.Booking{
		Fields: domain.Fields{
			{Name: domain.FieldNameFullName, Value: "Ann Lee"},
			{Name: domain.FieldNameEmail, Value: "ann@example.com"},
			{Name: "guests", Value: "2"},
		},
		SlotTime:  slot,
		Status:    domain.StatusActive,
		CreatedAt: createdAt,
	}
}

// RunBookingStore прогоняет набор проверок; newStore должен возвращать пустое хранилище
func RunBookingStore(t *testing.T, newStore func(t *testing.T) BookingStore) {
	t.Run("create and get", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, newBooking(ptr.Ptr(base), base.Add(-time.Hour)))
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)

		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Fields, got.Fields)
		assert.Equal(t, domain.StatusActive, got.Status)
		require.NotNil(t, got.SlotTime)
		assert.True(t, base.Equal(*got.SlotTime))
		assert.True(t, base.Add(-time.Hour).Equal(got.CreatedAt))
		assert.Nil(t, got.ScannedAt)
	})

	t.Run("explicit id is kept and unique", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		b := newBooking(nil, base)
		b.ID = "paper-42"
		created, err := s.Create(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, "paper-42", created.ID)

		_, err = s.Create(ctx, b)
		assert.ErrorIs(t, err, storage.ErrBookingExists)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := newStore(t).Get(context.Background(), "does-not-exist")
		assert.ErrorIs(t, err, storage.ErrBookingNotFound)
	})

	t.Run("scanned booking requires scan time", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		b := newBooking(ptr.Ptr(base), base)
		b.Status = domain.StatusScanned
		_, err := s.Create(ctx, b)
		assert.ErrorIs(t, err, storage.ErrInvalidBooking)

		_, err = s.CreateWithinCapacity(ctx, b, domain.SlotWindow{Start: base, End: base.Add(time.Hour)}, 10)
		assert.ErrorIs(t, err, storage.ErrInvalidBooking)

		count, err := s.CountInRange(ctx, base, base.Add(time.Hour))
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("mark scanned is compare and set", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, newBooking(nil, base))
		require.NoError(t, err)

		ok, err := s.MarkScanned(ctx, created.ID, base.Add(time.Hour))
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.MarkScanned(ctx, created.ID, base.Add(2*time.Hour))
		require.NoError(t, err)
		assert.False(t, ok)

		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusScanned, got.Status)
		require.NotNil(t, got.ScannedAt)
		assert.True(t, base.Add(time.Hour).Equal(*got.ScannedAt))

		ok, err = s.MarkScanned(ctx, "does-not-exist", base)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("mark scanned has one winner", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, newBooking(nil, base))
		require.NoError(t, err)

		var wins atomic.Int32
		var g errgroup.Group
		for i := 0; i < 20; i++ {
			i := i
			g.Go(func() error {
				ok, err := s.MarkScanned(ctx, created.ID, base.Add(time.Duration(i)*time.Second))
				if ok {
					wins.Add(1)
				}
				return err
			})
		}
		require.NoError(t, g.Wait())
		assert.Equal(t, int32(1), wins.Load())
	})

	t.Run("count in range is half open", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		slots := []time.Time{base, base.Add(59 * time.Minute), base.Add(time.Hour), base.Add(-time.Minute)}
		for _, slot := range slots {
			_, err := s.Create(ctx, newBooking(ptr.Ptr(slot), base))
			require.NoError(t, err)
		}
		_, err := s.Create(ctx, newBooking(nil, base))
		require.NoError(t, err)

		count, err := s.CountInRange(ctx, base, base.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("scanned bookings still count", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, newBooking(ptr.Ptr(base), base))
		require.NoError(t, err)
		_, err = s.MarkScanned(ctx, created.ID, base)
		require.NoError(t, err)

		count, err := s.CountInRange(ctx, base, base.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("create within capacity", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		window := domain.SlotWindow{Start: base, End: base.Add(time.Hour)}

		for i := 0; i < 2; i++ {
			_, err := s.CreateWithinCapacity(ctx, newBooking(ptr.Ptr(base), base), window, 2)
			require.NoError(t, err)
		}
		_, err := s.CreateWithinCapacity(ctx, newBooking(ptr.Ptr(base), base), window, 2)
		assert.ErrorIs(t, err, storage.ErrSlotFull)

		count, err := s.CountInRange(ctx, window.Start, window.End)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("list filters and order", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		older, err := s.Create(ctx, newBooking(ptr.Ptr(base), base.Add(-2*time.Hour)))
		require.NoError(t, err)

		other := newBooking(ptr.Ptr(base.AddDate(0, 0, 1)), base.Add(-time.Hour))
		other.Fields = domain.Fields{{Name: domain.FieldNameFullName, Value: "Bob"}, {Name: domain.FieldNameEmail, Value: "bob@test.org"}}
		newer, err := s.Create(ctx, other)
		require.NoError(t, err)

		_, err = s.MarkScanned(ctx, newer.ID, base)
		require.NoError(t, err)

		all, err := s.List(ctx, domain.BookingsFilter{})
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, newer.ID, all[0].ID)
		assert.Equal(t, older.ID, all[1].ID)

		dayStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		dayEnd := dayStart.AddDate(0, 0, 1)
		day, err := s.List(ctx, domain.BookingsFilter{SlotFrom: &dayStart, SlotTo: &dayEnd})
		require.NoError(t, err)
		require.Len(t, day, 1)
		assert.Equal(t, older.ID, day[0].ID)

		scanned, err := s.List(ctx, domain.BookingsFilter{Status: ptr.Ptr(domain.StatusScanned)})
		require.NoError(t, err)
		require.Len(t, scanned, 1)
		assert.Equal(t, newer.ID, scanned[0].ID)

		found, err := s.List(ctx, domain.BookingsFilter{Search: "BOB@"})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, newer.ID, found[0].ID)
	})

	t.Run("stats", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		dayStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

		_, err := s.Create(ctx, newBooking(nil, dayStart.Add(-time.Hour)))
		require.NoError(t, err)
		today, err := s.Create(ctx, newBooking(nil, dayStart.Add(time.Hour)))
		require.NoError(t, err)
		_, err = s.Create(ctx, newBooking(nil, dayStart.Add(2*time.Hour)))
		require.NoError(t, err)

		_, err = s.MarkScanned(ctx, today.ID, dayStart.Add(3*time.Hour))
		require.NoError(t, err)

		stats, err := s.Stats(ctx, dayStart, dayStart.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStats{Total: 3, CreatedToday: 2, ScannedToday: 1, Pending: 2}, *stats)
	})
}

// RunSettingsStore прогоняет набор проверок хранилища настроек
func RunSettingsStore(t *testing.T, newStore func(t *testing.T) SettingsStore) {
	t.Run("missing then saved", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		_, err := s.Get(ctx)
		assert.ErrorIs(t, err, storage.ErrSettingsNotFound)

		settings := domain.DefaultSettings()
		settings.System.MaxBookingsPerSlot = 3
		settings.System.EnforceSlotCapacity = true

		saved, err := s.Save(ctx, settings)
		require.NoError(t, err)
		assert.False(t, saved.UpdatedAt.IsZero())

		got, err := s.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, settings.System, got.System)
		assert.Equal(t, settings.Form, got.Form)
	})

	t.Run("save overwrites", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		_, err := s.Save(ctx, domain.DefaultSettings())
		require.NoError(t, err)

		updated := domain.DefaultSettings()
		updated.Form = updated.Form[:1]
		updated.System.EmailNotifications = false
		_, err = s.Save(ctx, updated)
		require.NoError(t, err)

		got, err := s.Get(ctx)
		require.NoError(t, err)
		assert.Len(t, got.Form, 1)
		assert.False(t, got.System.EmailNotifications)
	})
}
