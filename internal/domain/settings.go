package domain

import "time"

// FieldType is the input type of a form field
type FieldType string

const (
	FieldText          FieldType = "text"
	FieldEmail         FieldType = "email"
	FieldTel           FieldType = "tel"
	FieldNumber        FieldType = "number"
	FieldDate          FieldType = "date"
	FieldDateTimeLocal FieldType = "datetime-local"
	FieldTime          FieldType = "time"
)

// FieldTypes lists all supported field types
var FieldTypes = []FieldType{
	FieldText, FieldEmail, FieldTel, FieldNumber, FieldDate, FieldDateTimeLocal, FieldTime,
}

// FormField describes one input of the booking form
type FormField struct {
	Name      string
	Label     string
	Type      FieldType
	Required  bool
	MinLength *int
	Min       *float64
	Max       *float64
}

// SystemSettings holds capacity and notification settings
type SystemSettings struct {
	MaxBookingsPerSlot  int
	SlotDurationMinutes int
	AdvanceBookingDays  int // stored and exposed, not enforced
	EmailNotifications  bool
	EnforceSlotCapacity bool // reject over-capacity bookings instead of only reporting them
}

// SlotDuration returns the slot length
func (s SystemSettings) SlotDuration() time.Duration {
	return time.Duration(s.SlotDurationMinutes) * time.Minute
}

// Settings is the admin-editable configuration of the booking form
type Settings struct {
	Form      []FormField
	System    SystemSettings
	UpdatedAt time.Time
}

// DateField returns the first date-like field of the form, if any
func (s *Settings) DateField() (FormField, bool) {
	for _, f := range s.Form {
		if f.Type == FieldDate || f.Type == FieldDateTimeLocal {
			return f, true
		}
	}
	return FormField{}, false
}

// DefaultSystemSettings returns settings used until an admin saves their own
func DefaultSystemSettings() SystemSettings {
	return SystemSettings{
		MaxBookingsPerSlot:  DefaultMaxBookingsPerSlot,
		SlotDurationMinutes: DefaultSlotDurationMinutes,
		AdvanceBookingDays:  DefaultAdvanceBookingDays,
		EmailNotifications:  true,
	}
}

// DefaultFormFields returns the form shown before any settings are saved
func DefaultFormFields() []FormField {
	nameMin := 2
	return []FormField{
		{Name: FieldNameFullName, Label: "Full Name", Type: FieldText, Required: true, MinLength: &nameMin},
		{Name: FieldNameEmail, Label: "Email", Type: FieldEmail, Required: true},
		{Name: FieldNameDate, Label: "Date & Time", Type: FieldDateTimeLocal, Required: true},
	}
}

// DefaultSettings combines the default form and system settings
func DefaultSettings() *Settings {
	return &Settings{
		Form:   DefaultFormFields(),
		System: DefaultSystemSettings(),
	}
}
