package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CheckinService/internal/config"
	bookingRepo "github.com/m04kA/SMC-CheckinService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CheckinService/internal/infra/storage/memstore"
	"github.com/m04kA/SMC-CheckinService/internal/infra/storage/redisstore"
	settingsRepo "github.com/m04kA/SMC-CheckinService/internal/infra/storage/settings"
	bookingsService "github.com/m04kA/SMC-CheckinService/internal/service/bookings"
	settingsService "github.com/m04kA/SMC-CheckinService/internal/service/settings"
	checkAvailabilityUC "github.com/m04kA/SMC-CheckinService/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/SMC-CheckinService/internal/usecase/create_booking"
	verifyBookingUC "github.com/m04kA/SMC-CheckinService/internal/usecase/verify_booking"
	"github.com/m04kA/SMC-CheckinService/migrations"
	"github.com/m04kA/SMC-CheckinService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CheckinService/pkg/logger"
	"github.com/m04kA/SMC-CheckinService/pkg/txmanager"
)

// bookingStore все операции с бронированиями, которые нужны сервисам и use case'ам
type bookingStore interface {
	createBookingUC.BookingRepository
	checkAvailabilityUC.BookingRepository
	verifyBookingUC.BookingRepository
	bookingsService.BookingRepository
}

type stores struct {
	bookings bookingStore
	settings settingsService.SettingsRepository
	close    func()
}

// openStorage подключает хранилище, выбранное в storage.driver
func openStorage(ctx context.Context, cfg *config.Config, collector dbmetrics.Collector, log *logger.Logger) (*stores, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		return openPostgres(ctx, cfg.Database, collector, log)

	case config.StorageDriverRedis:
		return openRedis(ctx, cfg.Redis, log)

	case config.StorageDriverMemory:
		log.Warn("Using in-memory storage: bookings are lost on restart")
		return &stores{
			bookings: memstore.NewBookingStore(),
			settings: memstore.NewSettingsStore(),
			close:    func() {},
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig, collector dbmetrics.Collector, log *logger.Logger) (*stores, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)", cfg.Host, cfg.Port, cfg.DBName)

	stopPoolStats := make(chan struct{})
	wrappedDB := dbmetrics.WrapWithDefault(db, collector, "postgres", stopPoolStats)

	if cfg.AutoMigrate {
		if err := migrations.Up(ctx, wrappedDB); err != nil {
			close(stopPoolStats)
			db.Close()
			return nil, err
		}
		log.Info("Database migrations applied")
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB)

	return &stores{
		bookings: bookingRepo.NewRepository(wrappedDB, txMgr),
		settings: settingsRepo.NewRepository(wrappedDB),
		close: func() {
			close(stopPoolStats)
			if err := db.Close(); err != nil {
				log.Error("Failed to close database: %v", err)
			}
		},
	}, nil
}

func openRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*stores, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	log.Info("Successfully connected to redis (addr=%s, db=%d, prefix=%s)", cfg.Addr, cfg.DB, cfg.KeyPrefix)

	return &stores{
		bookings: redisstore.NewBookingStore(client, cfg.KeyPrefix),
		settings: redisstore.NewSettingsStore(client, cfg.KeyPrefix),
		close: func() {
			if err := client.Close(); err != nil {
				log.Error("Failed to close redis client: %v", err)
			}
		},
	}, nil
}
