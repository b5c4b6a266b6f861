package models

import (
	"time"

	"github.com/samber/lo"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
)

// Request модели

// UpdateSettingsRequest запрос на изменение настроек.
// Не переданные разделы остаются без изменений.
type UpdateSettingsRequest struct {
	FormFields     []FormField     `json:"formFields,omitempty"`
	SystemSettings *SystemSettings `json:"systemSettings,omitempty"`
}

// Response модели

// FormField описание поля формы
type FormField struct {
	Name      string   `json:"name"`
	Label     string   `json:"label"`
	Type      string   `json:"type"`
	Required  bool     `json:"required"`
	MinLength *int     `json:"minLength,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
}

// SystemSettings системные настройки
type SystemSettings struct {
	MaxBookingsPerSlot  int  `json:"maxBookingsPerSlot"`
	SlotDurationMinutes int  `json:"slotDurationMinutes"`
	AdvanceBookingDays  int  `json:"advanceBookingDays"`
	EmailNotifications  bool `json:"emailNotifications"`
	EnforceSlotCapacity bool `json:"enforceSlotCapacity"`
}

// SettingsResponse полные настройки для администратора
type SettingsResponse struct {
	FormFields     []FormField    `json:"formFields"`
	SystemSettings SystemSettings `json:"systemSettings"`
	UpdatedAt      *time.Time     `json:"updatedAt,omitempty"` // nil, пока используются значения по умолчанию
}

// PublicSystemSettings настройки, которые нужны форме бронирования
type PublicSystemSettings struct {
	MaxBookingsPerSlot  int `json:"maxBookingsPerSlot"`
	SlotDurationMinutes int `json:"slotDurationMinutes"`
	AdvanceBookingDays  int `json:"advanceBookingDays"`
}

// FormResponse схема публичной формы
type FormResponse struct {
	FormFields     []FormField          `json:"formFields"`
	SystemSettings PublicSystemSettings `json:"systemSettings"`
}

// Методы конвертации

// FromDomainFormField конвертирует поле формы в DTO
func FromDomainFormField(f domain.FormField, _ int) FormField {
	return FormField{
		Name:      f.Name,
		Label:     f.Label,
		Type:      string(f.Type),
		Required:  f.Required,
		MinLength: f.MinLength,
		Min:       f.Min,
		Max:       f.Max,
	}
}

// ToDomainFormField конвертирует DTO в поле формы
func ToDomainFormField(f FormField, _ int) domain.FormField {
	return domain.FormField{
		Name:      f.Name,
		Label:     f.Label,
		Type:      domain.FieldType(f.Type),
		Required:  f.Required,
		MinLength: f.MinLength,
		Min:       f.Min,
		Max:       f.Max,
	}
}

// FromDomainSystemSettings конвертирует системные настройки в DTO
func FromDomainSystemSettings(s domain.SystemSettings) SystemSettings {
	return SystemSettings{
		MaxBookingsPerSlot:  s.MaxBookingsPerSlot,
		SlotDurationMinutes: s.SlotDurationMinutes,
		AdvanceBookingDays:  s.AdvanceBookingDays,
		EmailNotifications:  s.EmailNotifications,
		EnforceSlotCapacity: s.EnforceSlotCapacity,
	}
}

// ToDomain конвертирует DTO в системные настройки
func (s SystemSettings) ToDomain() domain.SystemSettings {
	return domain.SystemSettings{
		MaxBookingsPerSlot:  s.MaxBookingsPerSlot,
		SlotDurationMinutes: s.SlotDurationMinutes,
		AdvanceBookingDays:  s.AdvanceBookingDays,
		EmailNotifications:  s.EmailNotifications,
		EnforceSlotCapacity: s.EnforceSlotCapacity,
	}
}

// FromDomainSettings конвертирует настройки в DTO
func FromDomainSettings(s *domain.Settings) *SettingsResponse {
	resp := &SettingsResponse{
		FormFields:     lo.Map(s.Form, FromDomainFormField),
		SystemSettings: FromDomainSystemSettings(s.System),
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

// FormFromDomainSettings оставляет только то, что нужно публичной форме
func FormFromDomainSettings(s *domain.Settings) *FormResponse {
	return &FormResponse{
		FormFields: lo.Map(s.Form, FromDomainFormField),
		SystemSettings: PublicSystemSettings{
			MaxBookingsPerSlot:  s.System.MaxBookingsPerSlot,
			SlotDurationMinutes: s.System.SlotDurationMinutes,
			AdvanceBookingDays:  s.System.AdvanceBookingDays,
		},
	}
}
