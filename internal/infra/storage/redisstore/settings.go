package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
	"github.com/m04kA/SMC-CheckinService/internal/infra/storage"
)

// SettingsStore хранит настройки одним JSON-значением
type SettingsStore struct {
	client redis.UniversalClient
	key    string
	now    func() time.Time
}

// NewSettingsStore создает хранилище настроек; пустой prefix заменяется на DefaultKeyPrefix
func NewSettingsStore(client redis.UniversalClient, prefix string) *SettingsStore {
	return &SettingsStore{client: client, key: keyPrefix(prefix) + ":settings", now: time.Now}
}

func (s *SettingsStore) Get(ctx context.Context) (*domain.Settings, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get settings: %w", ErrExecCommand, err)
	}

	var record storage.SettingsRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("%w: settings: %v", ErrDecode, err)
	}

	return &domain.Settings{
		Form:      storage.FormFieldsFromRecords(record.Fields),
		System:    storage.SystemSettingsFromRecord(record.System),
		UpdatedAt: time.UnixMilli(record.UpdatedAtUnixMs).UTC(),
	}, nil
}

func (s *SettingsStore) Save(ctx context.Context, settings *domain.Settings) (*domain.Settings, error) {
	updatedAt := time.UnixMilli(s.now().UnixMilli()).UTC()

	raw, err := json.Marshal(storage.SettingsRecord{
		Fields:          storage.FormFieldsToRecords(settings.Form),
		System:          storage.SystemSettingsToRecord(settings.System),
		UpdatedAtUnixMs: updatedAt.UnixMilli(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: settings: %v", ErrEncode, err)
	}

	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return nil, fmt.Errorf("%w: Save settings: %w", ErrExecCommand, err)
	}

	saved := *settings
	saved.UpdatedAt = updatedAt
	return &saved, nil
}
