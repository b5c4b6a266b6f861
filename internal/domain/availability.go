package domain

import "time"

// SlotWindow is the half-open interval [Start, End) a booking slot occupies
type SlotWindow struct {
	Start time.Time
	End   time.Time
}

// NewSlotWindow returns the window starting at t with the configured duration
func NewSlotWindow(t time.Time, settings SystemSettings) SlotWindow {
	return SlotWindow{Start: t, End: t.Add(settings.SlotDuration())}
}

// Contains reports whether t falls inside the window
func (w SlotWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Availability is the load of a slot at the time of the check
type Availability struct {
	Available    bool
	CurrentCount int
	Max          int
}

// NewAvailability builds the result for count bookings against max
func NewAvailability(count, max int) Availability {
	return Availability{Available: count < max, CurrentCount: count, Max: max}
}
