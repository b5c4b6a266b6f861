package check_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
	"github.com/m04kA/SMC-CheckinService/internal/infra/storage/memstore"
	"github.com/m04kA/SMC-CheckinService/internal/testutil"
)

type staticSettings struct {
	settings *domain.Settings
	err      error
}

func (s staticSettings) Current(context.Context) (*domain.Settings, error) {
	return s.settings, s.err
}

type failingRepo struct{ calls int }

func (r *failingRepo) CountInRange(context.Context, time.Time, time.Time) (int, error) {
	r.calls++
	return 0, errors.New("connection refused")
}

func seed(t *testing.T, store *memstore.BookingStore, slots ...time.Time) {
	t.Helper()
	for _, slot := range slots {
		slot := slot
		_, err := store.Create(context.Background(), &domain.Booking{
			SlotTime:  &slot,
			Status:    domain.StatusActive,
			CreatedAt: time.Now(),
		})
		require.NoError(t, err)
	}
}

func TestCheck_Window(t *testing.T) {
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	settings := domain.SystemSettings{MaxBookingsPerSlot: 2, SlotDurationMinutes: 60}

	store := memstore.NewBookingStore()
	seed(t, store,
		base.Add(-time.Minute),   // до окна
		base,                     // начало окна входит
		base.Add(59*time.Minute), // внутри
		base.Add(60*time.Minute), // конец окна не входит
	)

	uc := NewUseCase(store, staticSettings{}, &testutil.Logger{})

	got, err := uc.Check(context.Background(), &base, settings)
	require.NoError(t, err)
	assert.Equal(t, domain.Availability{Available: false, CurrentCount: 2, Max: 2}, got)

	later := base.Add(2 * time.Hour)
	got, err = uc.Check(context.Background(), &later, settings)
	require.NoError(t, err)
	assert.Equal(t, domain.Availability{Available: true, CurrentCount: 0, Max: 2}, got)
}

func TestCheck_Boundary(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }
	settings := domain.SystemSettings{MaxBookingsPerSlot: 2, SlotDurationMinutes: 60}
	requested := at(10, 30)

	store := memstore.NewBookingStore()
	uc := NewUseCase(store, staticSettings{}, &testutil.Logger{})

	seed(t, store, at(10, 30))
	got, err := uc.Check(context.Background(), &requested, settings)
	require.NoError(t, err)
	assert.Equal(t, domain.Availability{Available: true, CurrentCount: 1, Max: 2}, got)

	seed(t, store, at(10, 45))
	got, err = uc.Check(context.Background(), &requested, settings)
	require.NoError(t, err)
	assert.Equal(t, domain.Availability{Available: false, CurrentCount: 2, Max: 2}, got)
}

func TestCheck_CountsScannedBookings(t *testing.T) {
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	store := memstore.NewBookingStore()
	seed(t, store, base)

	list, err := store.List(context.Background(), domain.BookingsFilter{})
	require.NoError(t, err)
	ok, err := store.MarkScanned(context.Background(), list[0].ID, base)
	require.NoError(t, err)
	require.True(t, ok)

	uc := NewUseCase(store, staticSettings{}, &testutil.Logger{})
	got, err := uc.Check(context.Background(), &base, domain.SystemSettings{MaxBookingsPerSlot: 1, SlotDurationMinutes: 30})
	require.NoError(t, err)
	assert.False(t, got.Available)
	assert.Equal(t, 1, got.CurrentCount)
}

func TestCheck_NoSlotTimeSkipsStore(t *testing.T) {
	repo := &failingRepo{}
	uc := NewUseCase(repo, staticSettings{}, &testutil.Logger{})

	got, err := uc.Check(context.Background(), nil, domain.DefaultSystemSettings())
	require.NoError(t, err)
	assert.True(t, got.Available)
	assert.Equal(t, domain.DefaultMaxBookingsPerSlot, got.Max)
	assert.Zero(t, repo.calls)
}

func TestCheck_StoreFailure(t *testing.T) {
	uc := NewUseCase(&failingRepo{}, staticSettings{}, &testutil.Logger{})
	slot := time.Now()

	_, err := uc.Check(context.Background(), &slot, domain.DefaultSystemSettings())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestCheck_InvalidSettings(t *testing.T) {
	uc := NewUseCase(memstore.NewBookingStore(), staticSettings{}, &testutil.Logger{})
	slot := time.Now()

	tests := []struct {
		name     string
		settings domain.SystemSettings
	}{
		{name: "zero capacity", settings: domain.SystemSettings{MaxBookingsPerSlot: 0, SlotDurationMinutes: 60}},
		{name: "zero duration", settings: domain.SystemSettings{MaxBookingsPerSlot: 5, SlotDurationMinutes: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Check(context.Background(), &slot, tt.settings)
			assert.ErrorIs(t, err, ErrInvalidSettings)
		})
	}
}

func TestExecute(t *testing.T) {
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	store := memstore.NewBookingStore()
	seed(t, store, base.Add(10*time.Minute))

	uc := NewUseCase(store, staticSettings{settings: domain.DefaultSettings()}, &testutil.Logger{})

	resp, err := uc.Execute(context.Background(), &Request{SlotTime: &base})
	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Equal(t, 1, resp.CurrentCount)
	assert.Equal(t, domain.DefaultMaxBookingsPerSlot, resp.Max)
	require.NotNil(t, resp.SlotEnd)
	assert.Equal(t, base.Add(time.Hour), *resp.SlotEnd)
}

func TestExecute_SettingsFailure(t *testing.T) {
	uc := NewUseCase(memstore.NewBookingStore(), staticSettings{err: errors.New("timeout")}, &testutil.Logger{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
