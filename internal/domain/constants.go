package domain

// Default system settings
const (
	DefaultMaxBookingsPerSlot  = 10
	DefaultSlotDurationMinutes = 60
	DefaultAdvanceBookingDays  = 30
	DefaultTelMinLength        = 10
)

// Settings validation bounds
const (
	MinBookingsPerSlot     = 1
	MaxBookingsPerSlot     = 1000
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 1440 // 1 day
	MinAdvanceBookingDays  = 0
	MaxAdvanceBookingDays  = 365
	MaxFormFields          = 30
	MaxFieldValueLength    = 1000
)

// Well-known field names
const (
	FieldNameFullName = "fullName"
	FieldNameEmail    = "email"
	FieldNameDate     = "date"
	FieldNameTime     = "time"
)
