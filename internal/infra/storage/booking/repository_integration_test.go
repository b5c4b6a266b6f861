//go:build integration

package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CheckinService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-CheckinService/internal/testutil"
	"github.com/m04kA/SMC-CheckinService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CheckinService/pkg/txmanager"
)

func TestRepository_Postgres(t *testing.T) {
	db := dbmetrics.Wrap(testutil.StartPostgres(t), nil, "checkin")

	storagetest.RunBookingStore(t, func(t *testing.T) storagetest.BookingStore {
		_, err := db.ExecContext(context.Background(), "TRUNCATE bookings")
		require.NoError(t, err)
		return NewRepository(db, txmanager.NewTransactionManager(db))
	})
}
