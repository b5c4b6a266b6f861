package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
	"github.com/m04kA/SMC-CheckinService/internal/infra/storage"
)

// DefaultKeyPrefix префикс ключей по умолчанию
const DefaultKeyPrefix = "checkin"

// BookingStore хранилище бронирований в Redis.
// Бронирование хранится хэшем, время слота/создания/проверки индексируется
// в sorted set'ах (score - Unix-время в миллисекундах).
type BookingStore struct {
	client redis.UniversalClient
	prefix string
}

// NewBookingStore создает хранилище; пустой prefix заменяется на DefaultKeyPrefix.
// Ключи имеют вид {prefix}:booking:<id>.
func NewBookingStore(client redis.UniversalClient, prefix string) *BookingStore {
	return &BookingStore{client: client, prefix: keyPrefix(prefix)}
}

func (s *BookingStore) bookingKey(id string) string {
	return s.prefix + ":booking:" + id
}

func (s *BookingStore) slotsKey() string   { return s.prefix + ":bookings:slots" }
func (s *BookingStore) createdKey() string { return s.prefix + ":bookings:created" }
func (s *BookingStore) scannedKey() string { return s.prefix + ":bookings:scanned" }

func (s *BookingStore) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	return s.insert(ctx, booking, nil, 0)
}

// CreateWithinCapacity проверяет заполненность окна и вставляет бронирование одним Lua-скриптом
func (s *BookingStore) CreateWithinCapacity(ctx context.Context, booking *domain.Booking, window domain.SlotWindow, max int) (*domain.Booking, error) {
	return s.insert(ctx, booking, &window, max)
}

func (s *BookingStore) insert(ctx context.Context, booking *domain.Booking, window *domain.SlotWindow, max int) (*domain.Booking, error) {
	if err := storage.CheckInsert(booking); err != nil {
		return nil, err
	}
	created := booking.Clone()
	if created.ID == "" {
		created.ID = uuid.NewString()
	}

	fields, err := json.Marshal(created.Fields)
	if err != nil {
		return nil, fmt.Errorf("%w: insert - marshal fields: %v", ErrEncode, err)
	}

	var windowStart, windowEnd, capacity string
	if window != nil {
		windowStart = formatMillis(&window.Start)
		windowEnd = formatMillis(&window.End)
		capacity = strconv.Itoa(max)
	}

	keys := []string{s.bookingKey(created.ID), s.slotsKey(), s.createdKey(), s.scannedKey()}
	res, err := insertScript.Run(ctx, s.client, keys,
		created.ID,
		string(fields),
		formatMillis(created.SlotTime),
		string(created.Status),
		formatMillis(&created.CreatedAt),
		formatMillis(created.ScannedAt),
		windowStart,
		windowEnd,
		capacity,
	).Int()
	if err != nil {
		return nil, fmt.Errorf("%w: insert - run script: %w", ErrExecCommand, err)
	}

	switch res {
	case 0:
		return nil, storage.ErrBookingExists
	case -1:
		return nil, storage.ErrSlotFull
	}

	// Redis хранит время с точностью до миллисекунд
	return decodeBooking(created.ID, map[string]string{
		"fields":     string(fields),
		"slot_time":  formatMillis(created.SlotTime),
		"status":     string(created.Status),
		"created_at": formatMillis(&created.CreatedAt),
		"scanned_at": formatMillis(created.ScannedAt),
	})
}

func (s *BookingStore) Get(ctx context.Context, id string) (*domain.Booking, error) {
	values, err := s.client.HGetAll(ctx, s.bookingKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - hgetall: %w", ErrExecCommand, err)
	}
	if len(values) == 0 {
		return nil, storage.ErrBookingNotFound
	}
	return decodeBooking(id, values)
}

// MarkScanned переводит бронирование в scanned, только если оно active
func (s *BookingStore) MarkScanned(ctx context.Context, id string, scannedAt time.Time) (bool, error) {
	keys := []string{s.bookingKey(id), s.scannedKey()}
	res, err := markScannedScript.Run(ctx, s.client, keys, id, formatMillis(&scannedAt)).Int()
	if err != nil {
		return false, fmt.Errorf("%w: MarkScanned - run script: %w", ErrExecCommand, err)
	}
	return res == 1, nil
}

func (s *BookingStore) CountInRange(ctx context.Context, start, end time.Time) (int, error) {
	count, err := s.client.ZCount(ctx, s.slotsKey(), formatMillis(&start), "("+formatMillis(&end)).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: CountInRange - zcount: %w", ErrExecCommand, err)
	}
	return int(count), nil
}

func (s *BookingStore) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	ids, err := s.candidateIDs(ctx, filter)
	if err != nil {
		return nil, err
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, s.bookingKey(id))
	}
	if len(ids) > 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, fmt.Errorf("%w: List - pipeline: %w", ErrExecCommand, err)
		}
	}

	result := make([]*domain.Booking, 0, len(ids))
	for i, cmd := range cmds {
		values := cmd.Val()
		if len(values) == 0 {
			continue
		}
		b, err := decodeBooking(ids[i], values)
		if err != nil {
			return nil, err
		}
		if storage.MatchesFilter(b, filter) {
			result = append(result, b)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// candidateIDs сужает выборку по индексу слотов, если задан период
func (s *BookingStore) candidateIDs(ctx context.Context, filter domain.BookingsFilter) ([]string, error) {
	if filter.SlotFrom == nil && filter.SlotTo == nil {
		ids, err := s.client.ZRevRange(ctx, s.createdKey(), 0, -1).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: List - zrevrange: %w", ErrExecCommand, err)
		}
		return ids, nil
	}

	rng := &redis.ZRangeBy{Min: "-inf", Max: "+inf"}
	if filter.SlotFrom != nil {
		rng.Min = formatMillis(filter.SlotFrom)
	}
	if filter.SlotTo != nil {
		rng.Max = "(" + formatMillis(filter.SlotTo)
	}
	ids, err := s.client.ZRangeByScore(ctx, s.slotsKey(), rng).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: List - zrangebyscore: %w", ErrExecCommand, err)
	}
	return ids, nil
}

func (s *BookingStore) Stats(ctx context.Context, dayStart, dayEnd time.Time) (*domain.BookingStats, error) {
	start, end := formatMillis(&dayStart), "("+formatMillis(&dayEnd)

	pipe := s.client.Pipeline()
	total := pipe.ZCard(ctx, s.createdKey())
	scannedTotal := pipe.ZCard(ctx, s.scannedKey())
	createdToday := pipe.ZCount(ctx, s.createdKey(), start, end)
	scannedToday := pipe.ZCount(ctx, s.scannedKey(), start, end)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("%w: Stats - pipeline: %w", ErrExecCommand, err)
	}

	return &domain.BookingStats{
		Total:        int(total.Val()),
		CreatedToday: int(createdToday.Val()),
		ScannedToday: int(scannedToday.Val()),
		Pending:      int(total.Val() - scannedTotal.Val()),
	}, nil
}

func decodeBooking(id string, values map[string]string) (*domain.Booking, error) {
	b := &domain.Booking{ID: id, Status: domain.BookingStatus(values["status"])}

	if err := json.Unmarshal([]byte(values["fields"]), &b.Fields); err != nil {
		return nil, fmt.Errorf("%w: booking %s fields: %v", ErrDecode, id, err)
	}

	var err error
	if b.SlotTime, err = parseMillis(values["slot_time"]); err != nil {
		return nil, fmt.Errorf("%w: booking %s slot_time: %v", ErrDecode, id, err)
	}
	if b.ScannedAt, err = parseMillis(values["scanned_at"]); err != nil {
		return nil, fmt.Errorf("%w: booking %s scanned_at: %v", ErrDecode, id, err)
	}
	createdAt, err := parseMillis(values["created_at"])
	if err != nil {
		return nil, fmt.Errorf("%w: booking %s created_at: %v", ErrDecode, id, err)
	}
	if createdAt == nil {
		return nil, fmt.Errorf("%w: booking %s: missing created_at", ErrDecode, id)
	}
	b.CreatedAt = *createdAt

	return b, nil
}

func formatMillis(t *time.Time) string {
	if t == nil {
		return ""
	}
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func parseMillis(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	t := time.UnixMilli(ms).UTC()
	return &t, nil
}
