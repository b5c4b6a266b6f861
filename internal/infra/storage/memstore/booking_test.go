package memstore

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
	"github.com/m04kA/SMC-CheckinService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-CheckinService/pkg/ptr"
)

var base = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newBooking(slot *time.Time) *domain.Booking {
	return &domain.Booking{
		Fields:    domain.Fields{{Name: "fullName", Value: "Ann"}},
		SlotTime:  slot,
		Status:    domain.StatusActive,
		CreatedAt: base.Add(-24 * time.Hour),
	}
}

func TestBookingStore_CreateAssignsUUID(t *testing.T) {
	s := NewBookingStore()
	ctx := context.Background()

	created, err := s.Create(ctx, newBooking(nil))
	require.NoError(t, err)

	_, err = uuid.Parse(created.ID)
	assert.NoError(t, err)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestBookingStore_GetReturnsCopy(t *testing.T) {
	s := NewBookingStore()
	ctx := context.Background()

	created, err := s.Create(ctx, newBooking(nil))
	require.NoError(t, err)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	got.Status = domain.StatusScanned

	again, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, again.Status)
}

func TestBookingStore_MarkScannedConcurrent(t *testing.T) {
	s := NewBookingStore()
	ctx := context.Background()

	created, err := s.Create(ctx, newBooking(nil))
	require.NoError(t, err)

	var wins atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			ok, err := s.MarkScanned(gctx, created.ID, time.Now())
			if ok {
				wins.Add(1)
			}
			return err
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, int32(1), wins.Load())
}

func TestBookingStore_CreateWithinCapacityConcurrent(t *testing.T) {
	s := NewBookingStore()
	window := domain.SlotWindow{Start: base, End: base.Add(time.Hour)}

	var accepted atomic.Int32
	var g errgroup.Group
	for i := 0; i < 20; i++ {
		g.Go(func() error {
			_, err := s.CreateWithinCapacity(context.Background(), newBooking(ptr.Ptr(base)), window, 5)
			if err == nil {
				accepted.Add(1)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, int32(5), accepted.Load())
}

func TestBookingStore_CancelledContext(t *testing.T) {
	s := NewBookingStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Get(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)

	ok, err := s.MarkScanned(ctx, "x", base)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBookingStore_Contract(t *testing.T) {
	storagetest.RunBookingStore(t, func(t *testing.T) storagetest.BookingStore {
		return NewBookingStore()
	})
}

func TestSettingsStore_Contract(t *testing.T) {
	storagetest.RunSettingsStore(t, func(t *testing.T) storagetest.SettingsStore {
		return NewSettingsStore()
	})
}
