package settings

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/samber/lo"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
	"github.com/m04kA/SMC-CheckinService/internal/infra/storage"
	"github.com/m04kA/SMC-CheckinService/internal/service/settings/models"
)

// fieldNamePattern допустимые имена полей формы (ключи в сохраненном бронировании)
var fieldNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,63}$`)

// Service сервис настроек формы и вместимости
type Service struct {
	repo     SettingsRepository
	defaults *domain.Settings
	logger   Logger
}

// NewService создает новый экземпляр сервиса настроек.
// defaults используются, пока администратор не сохранил свои настройки; nil означает встроенные значения.
func NewService(repo SettingsRepository, defaults *domain.Settings, logger Logger) *Service {
	if defaults == nil {
		defaults = domain.DefaultSettings()
	}

	return &Service{
		repo:     repo,
		defaults: defaults,
		logger:   logger,
	}
}

// Current возвращает действующие настройки
func (s *Service) Current(ctx context.Context) (*domain.Settings, error) {
	current, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSettingsNotFound) {
			return s.defaultsCopy(), nil
		}
		s.logger.Error("Current: repository error: %v", err)
		return nil, fmt.Errorf("%w: Current - repository error: %v", ErrInternal, err)
	}

	return current, nil
}

// Get возвращает настройки для администратора
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	return models.FromDomainSettings(current), nil
}

// GetForm возвращает схему публичной формы
func (s *Service) GetForm(ctx context.Context) (*models.FormResponse, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	return models.FormFromDomainSettings(current), nil
}

// Update изменяет настройки. Не переданные разделы берутся из текущих настроек
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings, formFields=%d, systemSettings=%t",
		len(req.FormFields), req.SystemSettings != nil)

	current, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	next := &domain.Settings{
		Form:   current.Form,
		System: current.System,
	}
	if req.FormFields != nil {
		next.Form = lo.Map(req.FormFields, models.ToDomainFormField)
	}
	if req.SystemSettings != nil {
		next.System = req.SystemSettings.ToDomain()
	}

	for i := range next.Form {
		if next.Form[i].Label == "" {
			next.Form[i].Label = next.Form[i].Name
		}
	}

	if err := validateSystem(next.System); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}
	if err := validateForm(next.Form); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.repo.Save(ctx, next)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully saved settings")
	return models.FromDomainSettings(saved), nil
}

func (s *Service) defaultsCopy() *domain.Settings {
	out := *s.defaults
	out.Form = append([]domain.FormField(nil), s.defaults.Form...)
	return &out
}

// validateSystem проверяет границы системных настроек
func validateSystem(sys domain.SystemSettings) error {
	if sys.MaxBookingsPerSlot < domain.MinBookingsPerSlot || sys.MaxBookingsPerSlot > domain.MaxBookingsPerSlot {
		return fmt.Errorf("%w: maxBookingsPerSlot must be between %d and %d",
			ErrInvalidInput, domain.MinBookingsPerSlot, domain.MaxBookingsPerSlot)
	}

	if sys.SlotDurationMinutes < domain.MinSlotDurationMinutes || sys.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if sys.AdvanceBookingDays < domain.MinAdvanceBookingDays || sys.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	return nil
}

// validateForm проверяет схему формы
func validateForm(form []domain.FormField) error {
	if len(form) == 0 || len(form) > domain.MaxFormFields {
		return fmt.Errorf("%w: form must have between 1 and %d fields", ErrInvalidInput, domain.MaxFormFields)
	}

	for _, f := range form {
		if !fieldNamePattern.MatchString(f.Name) {
			return fmt.Errorf("%w: invalid field name %q", ErrInvalidInput, f.Name)
		}

		if !lo.Contains(domain.FieldTypes, f.Type) {
			return fmt.Errorf("%w: field %s has unsupported type %q", ErrInvalidInput, f.Name, f.Type)
		}

		if f.MinLength != nil && (*f.MinLength < 0 || *f.MinLength > domain.MaxFieldValueLength) {
			return fmt.Errorf("%w: field %s minLength must be between 0 and %d",
				ErrInvalidInput, f.Name, domain.MaxFieldValueLength)
		}

		if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
			return fmt.Errorf("%w: field %s min is greater than max", ErrInvalidInput, f.Name)
		}
	}

	if dups := lo.FindDuplicatesBy(form, func(f domain.FormField) string { return f.Name }); len(dups) > 0 {
		return fmt.Errorf("%w: duplicate field name %q", ErrInvalidInput, dups[0].Name)
	}

	return nil
}
