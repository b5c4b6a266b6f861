package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
	"github.com/m04kA/SMC-CheckinService/internal/infra/storage"
	"github.com/m04kA/SMC-CheckinService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CheckinService/pkg/psqlbuilder"
)

const (
	tableBookings = "bookings"

	// codeUniqueViolation нарушение уникальности первичного ключа
	codeUniqueViolation pq.ErrorCode = "23505"
)

var bookingColumns = []string{
	"id",
	"fields",
	"slot_time",
	"status",
	"created_at",
	"scanned_at",
}

// Repository репозиторий бронирований в PostgreSQL
type Repository struct {
	db        DBExecutor
	txManager TransactionManager
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, txManager TransactionManager) *Repository {
	return &Repository{db: db, txManager: txManager}
}

// Create сохраняет новое бронирование.
// Если ID не задан, генерируется UUIDv4. Повторный ID возвращает storage.ErrBookingExists.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if err := storage.CheckInsert(booking); err != nil {
		return nil, err
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	created := booking.Clone()
	if created.ID == "" {
		created.ID = uuid.NewString()
	}

	fields, err := json.Marshal(created.Fields)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal fields: %v", ErrEncodeFields, err)
	}

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(bookingColumns...).
		Values(
			created.ID,
			string(fields),
			created.SlotTime,
			created.Status,
			created.CreatedAt,
			created.ScannedAt,
		).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == codeUniqueViolation {
			return nil, storage.ErrBookingExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return created, nil
}

// Get получает бронирование по ID
func (r *Repository) Get(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// MarkScanned переводит бронирование из active в scanned.
// Обновление применяется только если статус все еще active, поэтому из
// нескольких конкурентных вызовов true получает ровно один.
func (r *Repository) MarkScanned(ctx context.Context, id string, scannedAt time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", domain.StatusScanned).
		Set("scanned_at", scannedAt).
		Where(squirrel.Eq{"id": id, "status": domain.StatusActive}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: MarkScanned - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: MarkScanned - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: MarkScanned - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}

// CountInRange считает бронирования любого статуса со slot_time в [start, end)
func (r *Repository) CountInRange(ctx context.Context, start, end time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(tableBookings).
		Where(squirrel.GtOrEq{"slot_time": start}).
		Where(squirrel.Lt{"slot_time": end}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountInRange - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountInRange - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// CreateWithinCapacity атомарно проверяет заполненность слота и сохраняет бронирование.
// Выполняется в сериализуемой транзакции; при заполненном слоте возвращает storage.ErrSlotFull.
func (r *Repository) CreateWithinCapacity(ctx context.Context, booking *domain.Booking, window domain.SlotWindow, max int) (*domain.Booking, error) {
	if err := storage.CheckInsert(booking); err != nil {
		return nil, err
	}

	var created *domain.Booking

	err := r.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		count, err := r.CountInRange(txCtx, window.Start, window.End)
		if err != nil {
			return err
		}
		if count >= max {
			return storage.ErrSlotFull
		}

		created, err = r.Create(txCtx, booking)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// List получает бронирования по фильтру, новые первыми
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		OrderBy("created_at DESC", "id")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.SlotFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"slot_time": *filter.SlotFrom})
	}
	if filter.SlotTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"slot_time": *filter.SlotTo})
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"fields->>'" + domain.FieldNameFullName + "'": pattern},
			squirrel.ILike{"fields->>'" + domain.FieldNameEmail + "'": pattern},
		})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Stats считает счетчики дашборда за день [dayStart, dayEnd)
func (r *Repository) Stats(ctx context.Context, dayStart, dayEnd time.Time) (*domain.BookingStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE created_at >= ? AND created_at < ?)", dayStart, dayEnd)).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE scanned_at >= ? AND scanned_at < ?)", dayStart, dayEnd)).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE status = ?)", domain.StatusActive)).
		From(tableBookings).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Stats - build select query: %v", ErrBuildQuery, err)
	}

	var stats domain.BookingStats
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.Total,
		&stats.CreatedToday,
		&stats.ScannedToday,
		&stats.Pending,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - scan counters: %w", ErrScanRow, err)
	}

	return &stats, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking   domain.Booking
		fields    []byte
		slotTime  sql.NullTime
		scannedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&fields,
		&slotTime,
		&booking.Status,
		&booking.CreatedAt,
		&scannedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(fields, &booking.Fields); err != nil {
		return nil, fmt.Errorf("decode fields of booking %s: %w", booking.ID, err)
	}
	if slotTime.Valid {
		booking.SlotTime = &slotTime.Time
	}
	if scannedAt.Valid {
		booking.ScannedAt = &scannedAt.Time
	}

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
