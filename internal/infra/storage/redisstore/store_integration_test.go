//go:build integration

package redisstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CheckinService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-CheckinService/internal/testutil"
)

func TestBookingStore_Redis(t *testing.T) {
	client := testutil.StartRedis(t)

	storagetest.RunBookingStore(t, func(t *testing.T) storagetest.BookingStore {
		require.NoError(t, client.FlushDB(context.Background()).Err())
		return NewBookingStore(client, "test")
	})
}

func TestSettingsStore_Redis(t *testing.T) {
	client := testutil.StartRedis(t)

	storagetest.RunSettingsStore(t, func(t *testing.T) storagetest.SettingsStore {
		require.NoError(t, client.FlushDB(context.Background()).Err())
		return NewSettingsStore(client, "test")
	})
}
