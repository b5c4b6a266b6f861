package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
	"github.com/m04kA/SMC-CheckinService/pkg/ptr"
)

func TestMatchesFilter(t *testing.T) {
	slot := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	dayStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	booking := &domain.Booking{
		Fields:   domain.Fields{{Name: "fullName", Value: "Ann Lee"}, {Name: "email", Value: "ann@example.com"}},
		SlotTime: &slot,
		Status:   domain.StatusActive,
	}
	dateless := &domain.Booking{Status: domain.StatusActive}

	tests := []struct {
		name    string
		booking *domain.Booking
		filter  domain.BookingsFilter
		want    bool
	}{
		{name: "empty filter", booking: booking, want: true},
		{name: "status match", booking: booking, filter: domain.BookingsFilter{Status: ptr.Ptr(domain.StatusActive)}, want: true},
		{name: "status mismatch", booking: booking, filter: domain.BookingsFilter{Status: ptr.Ptr(domain.StatusScanned)}, want: false},
		{name: "inside day", booking: booking, filter: domain.BookingsFilter{SlotFrom: &dayStart, SlotTo: &dayEnd}, want: true},
		{name: "end is exclusive", booking: booking, filter: domain.BookingsFilter{SlotTo: &slot}, want: false},
		{name: "dateless excluded by date filter", booking: dateless, filter: domain.BookingsFilter{SlotFrom: &dayStart}, want: false},
		{name: "search by name", booking: booking, filter: domain.BookingsFilter{Search: "ann l"}, want: true},
		{name: "search by email", booking: booking, filter: domain.BookingsFilter{Search: "EXAMPLE.COM"}, want: true},
		{name: "search miss", booking: booking, filter: domain.BookingsFilter{Search: "bob"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesFilter(tt.booking, tt.filter))
		})
	}
}
