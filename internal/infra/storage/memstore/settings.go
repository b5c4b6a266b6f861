package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
	"github.com/m04kA/SMC-CheckinService/internal/infra/storage"
)

// SettingsStore хранилище настроек в памяти процесса
type SettingsStore struct {
	mu       sync.RWMutex
	settings *domain.Settings
	now      func() time.Time
}

// NewSettingsStore создает пустое хранилище настроек
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{now: time.Now}
}

func (s *SettingsStore) Get(ctx context.Context) (*domain.Settings, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		return nil, storage.ErrSettingsNotFound
	}
	return cloneSettings(s.settings), nil
}

func (s *SettingsStore) Save(ctx context.Context, settings *domain.Settings) (*domain.Settings, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	saved := cloneSettings(settings)
	saved.UpdatedAt = s.now()
	s.settings = saved
	return cloneSettings(saved), nil
}

func cloneSettings(s *domain.Settings) *domain.Settings {
	out := *s
	out.Form = append([]domain.FormField(nil), s.Form...)
	return &out
}
