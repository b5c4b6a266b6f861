package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// BookingStatus represents the check-in status of a booking
type BookingStatus string

const (
	StatusActive  BookingStatus = "active"
	StatusScanned BookingStatus = "scanned"
)

// IsValid reports whether s is a known status
func (s BookingStatus) IsValid() bool {
	return s == StatusActive || s == StatusScanned
}

// Field is a single submitted form value
type Field struct {
	Name  string
	Value string
}

// Fields keeps submitted form values in submission order.
// It is encoded as a JSON object whose keys follow that order.
type Fields []Field

// Get returns the value of the named field
func (f Fields) Get(name string) (string, bool) {
	for _, field := range f {
		if field.Name == name {
			return field.Value, true
		}
	}
	return "", false
}

// Set replaces the value of the named field or appends it
func (f *Fields) Set(name, value string) {
	for i := range *f {
		if (*f)[i].Name == name {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Field{Name: name, Value: value})
}

// Clone returns an independent copy
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	copy(out, f)
	return out
}

func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(field.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts an object of scalars. Numbers and booleans keep their
// literal text, null values are dropped.
func (f *Fields) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*f = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("fields: expected JSON object")
	}

	out := Fields{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return errors.New("fields: expected string key")
		}

		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		switch v := valTok.(type) {
		case nil:
			continue
		case string:
			out.Set(key, v)
		case json.Number:
			out.Set(key, v.String())
		case bool:
			out.Set(key, fmt.Sprintf("%t", v))
		default:
			return fmt.Errorf("fields: field %q must be a scalar value", key)
		}
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*f = out
	return nil
}

// Booking represents a reservation subject to check-in
type Booking struct {
	ID        string
	Fields    Fields
	SlotTime  *time.Time // nil for forms without a date field
	Status    BookingStatus
	CreatedAt time.Time
	ScannedAt *time.Time // set once, together with StatusScanned
}

// IsScanned returns true if the booking has already been redeemed
func (b *Booking) IsScanned() bool {
	return b.Status == StatusScanned
}

// IsFutureAt returns true if the reserved slot starts after now
func (b *Booking) IsFutureAt(now time.Time) bool {
	return b.SlotTime != nil && b.SlotTime.After(now)
}

// Clone returns a deep copy so callers can't mutate stored state
func (b *Booking) Clone() *Booking {
	if b == nil {
		return nil
	}
	out := *b
	out.Fields = b.Fields.Clone()
	if b.SlotTime != nil {
		t := *b.SlotTime
		out.SlotTime = &t
	}
	if b.ScannedAt != nil {
		t := *b.ScannedAt
		out.ScannedAt = &t
	}
	return &out
}

// BookingsFilter filters the admin booking list. Zero values mean "no filter".
type BookingsFilter struct {
	SlotFrom *time.Time // inclusive
	SlotTo   *time.Time // exclusive
	Status   *BookingStatus
	Search   string // case-insensitive substring of the name or email field
}

// BookingStats are dashboard counters
type BookingStats struct {
	Total        int
	CreatedToday int
	ScannedToday int
	Pending      int
}
