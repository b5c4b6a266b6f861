package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
	"github.com/m04kA/SMC-CheckinService/internal/infra/storage/memstore"
	"github.com/m04kA/SMC-CheckinService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CheckinService/internal/testutil"
	"github.com/m04kA/SMC-CheckinService/pkg/ptr"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type brokenRepo struct{}

func (brokenRepo) Get(context.Context, string) (*domain.Booking, error) {
	return nil, errors.New("timeout")
}

func (brokenRepo) List(context.Context, domain.BookingsFilter) ([]*domain.Booking, error) {
	return nil, errors.New("timeout")
}

func (brokenRepo) Stats(context.Context, time.Time, time.Time) (*domain.BookingStats, error) {
	return nil, errors.New("timeout")
}

var moscow = time.FixedZone("MSK", 3*60*60)

func seed(t *testing.T, store *memstore.BookingStore, name string, slot *time.Time, createdAt time.Time) *domain.Booking {
	t.Helper()
	b, err := store.Create(context.Background(), &domain.Booking{
		Fields: domain.Fields{
			{Name: domain.FieldNameFullName, Value: name},
			{Name: domain.FieldNameEmail, Value: name + "@example.com"},
		},
		SlotTime:  slot,
		Status:    domain.StatusActive,
		CreatedAt: createdAt,
	})
	require.NoError(t, err)
	return b
}

func TestGetPublic(t *testing.T) {
	store := memstore.NewBookingStore()
	b := seed(t, store, "ann", nil, time.Now())
	svc := NewService(store, moscow, &testutil.Logger{})

	resp, err := svc.GetPublic(context.Background(), " "+b.ID+" ")
	require.NoError(t, err)
	assert.Equal(t, b.ID, resp.ID)
	assert.Equal(t, b.Fields, resp.Fields)

	_, err = svc.GetPublic(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetPublic(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_DateUsesLocalDay(t *testing.T) {
	store := memstore.NewBookingStore()
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	// 14 марта 23:30 по Москве это 14 марта 20:30 UTC, 15 марта 01:00 по Москве уже 14 марта 22:00 UTC
	seed(t, store, "late", ptr.Ptr(time.Date(2026, 3, 14, 23, 30, 0, 0, moscow)), created)
	seed(t, store, "next", ptr.Ptr(time.Date(2026, 3, 15, 1, 0, 0, 0, moscow)), created)
	seed(t, store, "nodate", nil, created)

	svc := NewService(store, moscow, &testutil.Logger{})

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{Date: ptr.Ptr("2026-03-14")})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	name, _ := resp.Bookings[0].Fields.Get(domain.FieldNameFullName)
	assert.Equal(t, "late", name)

	resp, err = svc.List(context.Background(), &models.ListBookingsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
}

func TestList_StatusAndSearch(t *testing.T) {
	store := memstore.NewBookingStore()
	now := time.Now()
	scanned := seed(t, store, "bob", nil, now)
	seed(t, store, "bobby", nil, now.Add(time.Second))
	seed(t, store, "carol", nil, now.Add(2*time.Second))

	ok, err := store.MarkScanned(context.Background(), scanned.ID, now)
	require.NoError(t, err)
	require.True(t, ok)

	svc := NewService(store, time.UTC, &testutil.Logger{})

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("scanned")})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, scanned.ID, resp.Bookings[0].ID)
	assert.NotNil(t, resp.Bookings[0].ScannedAt)

	resp, err = svc.List(context.Background(), &models.ListBookingsRequest{Search: "BOB"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
}

func TestList_InvalidInput(t *testing.T) {
	svc := NewService(memstore.NewBookingStore(), time.UTC, &testutil.Logger{})

	_, err := svc.List(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("cancelled")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListBookingsRequest{Date: ptr.Ptr("14.03.2026")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestStats(t *testing.T) {
	store := memstore.NewBookingStore()
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	seed(t, store, "old", nil, now.AddDate(0, 0, -2))
	today := seed(t, store, "today", nil, now.Add(-time.Hour))
	seed(t, store, "pending", nil, now.Add(-2*time.Hour))

	ok, err := store.MarkScanned(context.Background(), today.ID, now)
	require.NoError(t, err)
	require.True(t, ok)

	svc := NewService(store, time.UTC, &testutil.Logger{})
	svc.timeProvider = fixedTime{now}

	resp, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &models.StatsResponse{Total: 3, CreatedToday: 2, ScannedToday: 1, Pending: 2}, resp)
}

func TestRepositoryErrors(t *testing.T) {
	svc := NewService(brokenRepo{}, time.UTC, &testutil.Logger{})

	_, err := svc.GetPublic(context.Background(), "x")
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.List(context.Background(), &models.ListBookingsRequest{})
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.Stats(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
