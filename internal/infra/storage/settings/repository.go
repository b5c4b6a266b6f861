package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
	"github.com/m04kA/SMC-CheckinService/internal/infra/storage"
	"github.com/m04kA/SMC-CheckinService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CheckinService/pkg/psqlbuilder"
)

const (
	tableSettings = "settings"

	// singletonID настройки хранятся одной строкой
	singletonID = 1
)

// DBExecutor интерфейс выполнения запросов (*sql.DB, *dbmetrics.DB, транзакция)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий настроек формы и системы в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает сохраненные настройки.
// Если настройки еще не сохранялись, возвращает storage.ErrSettingsNotFound.
func (r *Repository) Get(ctx context.Context) (*domain.Settings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"form_fields",
		"max_bookings_per_slot",
		"slot_duration_minutes",
		"advance_booking_days",
		"email_notifications",
		"enforce_slot_capacity",
		"updated_at",
	).
		From(tableSettings).
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		settings   domain.Settings
		formFields []byte
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&formFields,
		&settings.System.MaxBookingsPerSlot,
		&settings.System.SlotDurationMinutes,
		&settings.System.AdvanceBookingDays,
		&settings.System.EmailNotifications,
		&settings.System.EnforceSlotCapacity,
		&settings.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %w", ErrScanRow, err)
	}

	var records []storage.FormFieldRecord
	if err := json.Unmarshal(formFields, &records); err != nil {
		return nil, fmt.Errorf("%w: Get - decode form fields: %v", ErrScanRow, err)
	}
	settings.Form = storage.FormFieldsFromRecords(records)

	return &settings, nil
}

// Save создает или полностью перезаписывает настройки
func (r *Repository) Save(ctx context.Context, settings *domain.Settings) (*domain.Settings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	formFields, err := json.Marshal(storage.FormFieldsToRecords(settings.Form))
	if err != nil {
		return nil, fmt.Errorf("%w: Save - marshal form fields: %v", ErrEncodeFields, err)
	}

	query, args, err := psqlbuilder.Insert(tableSettings).
		Columns(
			"id",
			"form_fields",
			"max_bookings_per_slot",
			"slot_duration_minutes",
			"advance_booking_days",
			"email_notifications",
			"enforce_slot_capacity",
			"updated_at",
		).
		Values(
			singletonID,
			string(formFields),
			settings.System.MaxBookingsPerSlot,
			settings.System.SlotDurationMinutes,
			settings.System.AdvanceBookingDays,
			settings.System.EmailNotifications,
			settings.System.EnforceSlotCapacity,
			squirrel.Expr("NOW()"),
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			form_fields = EXCLUDED.form_fields,
			max_bookings_per_slot = EXCLUDED.max_bookings_per_slot,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			email_notifications = EXCLUDED.email_notifications,
			enforce_slot_capacity = EXCLUDED.enforce_slot_capacity,
			updated_at = EXCLUDED.updated_at
		RETURNING updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	saved := *settings
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&saved.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Save - execute upsert: %w", ErrExecQuery, err)
	}

	return &saved, nil
}
