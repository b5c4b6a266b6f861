package redisstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hashTag возвращает часть ключа, по которой Redis Cluster считает слот
func hashTag(key string) string {
	start := strings.Index(key, "{")
	if start < 0 {
		return key
	}
	end := strings.Index(key[start+1:], "}")
	if end <= 0 {
		return key
	}
	return key[start+1 : start+1+end]
}

func TestKeyPrefix(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{prefix: "", want: "{checkin}"},
		{prefix: "checkin", want: "{checkin}"},
		{prefix: "event-2026", want: "{event-2026}"},
		{prefix: "{shared}", want: "{shared}"},
		{prefix: "{}x", want: "{{}x}"},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			assert.Equal(t, tt.want, keyPrefix(tt.prefix))
		})
	}
}

func TestBookingStore_KeysShareHashSlot(t *testing.T) {
	for _, prefix := range []string{"", "test", "{shared}"} {
		bookings := NewBookingStore(nil, prefix)
		settings := NewSettingsStore(nil, prefix)

		keys := []string{
			bookings.bookingKey("3f1c2a9e-0000-4000-8000-000000000001"),
			bookings.bookingKey("b-2"),
			bookings.slotsKey(),
			bookings.createdKey(),
			bookings.scannedKey(),
			settings.key,
		}

		tag := hashTag(keys[0])
		require.NotEqual(t, keys[0], tag, "key %q has no hash tag", keys[0])
		for _, key := range keys {
			assert.Equal(t, tag, hashTag(key), key)
		}
	}
}
