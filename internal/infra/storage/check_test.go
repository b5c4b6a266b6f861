package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
)

func TestCheckInsert(t *testing.T) {
	scannedAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		booking *domain.Booking
		wantErr bool
	}{
		{name: "active", booking: &domain.Booking{Status: domain.StatusActive}},
		{name: "scanned with time", booking: &domain.Booking{Status: domain.StatusScanned, ScannedAt: &scannedAt}},
		{name: "scanned without time", booking: &domain.Booking{Status: domain.StatusScanned}, wantErr: true},
		{name: "active with time", booking: &domain.Booking{Status: domain.StatusActive, ScannedAt: &scannedAt}, wantErr: true},
		{name: "unknown status", booking: &domain.Booking{Status: "cancelled"}, wantErr: true},
		{name: "empty status", booking: &domain.Booking{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckInsert(tt.booking)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBooking)
				return
			}
			assert.NoError(t, err)
		})
	}
}
