package storage

import (
	"github.com/samber/lo"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
)

// FormFieldRecord JSON-представление поля формы в хранилище
type FormFieldRecord struct {
	Name      string   `json:"name"`
	Label     string   `json:"label"`
	Type      string   `json:"type"`
	Required  bool     `json:"required"`
	MinLength *int     `json:"minLength,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
}

// SystemSettingsRecord JSON-представление системных настроек
type SystemSettingsRecord struct {
	MaxBookingsPerSlot  int  `json:"maxBookingsPerSlot"`
	SlotDurationMinutes int  `json:"slotDurationMinutes"`
	AdvanceBookingDays  int  `json:"advanceBookingDays"`
	EmailNotifications  bool `json:"emailNotifications"`
	EnforceSlotCapacity bool `json:"enforceSlotCapacity"`
}

// SettingsRecord настройки целиком (используется хранилищами без схемы)
type SettingsRecord struct {
	Fields          []FormFieldRecord    `json:"fields"`
	System          SystemSettingsRecord `json:"system"`
	UpdatedAtUnixMs int64                `json:"updatedAt"`
}

// FormFieldsToRecords конвертирует поля формы в записи хранилища
func FormFieldsToRecords(fields []domain.FormField) []FormFieldRecord {
	return lo.Map(fields, func(f domain.FormField, _ int) FormFieldRecord {
		return FormFieldRecord{
			Name:      f.Name,
			Label:     f.Label,
			Type:      string(f.Type),
			Required:  f.Required,
			MinLength: f.MinLength,
			Min:       f.Min,
			Max:       f.Max,
		}
	})
}

// FormFieldsFromRecords конвертирует записи хранилища в поля формы
func FormFieldsFromRecords(records []FormFieldRecord) []domain.FormField {
	return lo.Map(records, func(r FormFieldRecord, _ int) domain.FormField {
		return domain.FormField{
			Name:      r.Name,
			Label:     r.Label,
			Type:      domain.FieldType(r.Type),
			Required:  r.Required,
			MinLength: r.MinLength,
			Min:       r.Min,
			Max:       r.Max,
		}
	})
}

// SystemSettingsToRecord конвертирует системные настройки в запись хранилища
func SystemSettingsToRecord(s domain.SystemSettings) SystemSettingsRecord {
	return SystemSettingsRecord{
		MaxBookingsPerSlot:  s.MaxBookingsPerSlot,
		SlotDurationMinutes: s.SlotDurationMinutes,
		AdvanceBookingDays:  s.AdvanceBookingDays,
		EmailNotifications:  s.EmailNotifications,
		EnforceSlotCapacity: s.EnforceSlotCapacity,
	}
}

// SystemSettingsFromRecord конвертирует запись хранилища в системные настройки
func SystemSettingsFromRecord(r SystemSettingsRecord) domain.SystemSettings {
	return domain.SystemSettings{
		MaxBookingsPerSlot:  r.MaxBookingsPerSlot,
		SlotDurationMinutes: r.SlotDurationMinutes,
		AdvanceBookingDays:  r.AdvanceBookingDays,
		EmailNotifications:  r.EmailNotifications,
		EnforceSlotCapacity: r.EnforceSlotCapacity,
	}
}
