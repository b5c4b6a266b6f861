package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Поддерживаемые форматы входных значений даты/времени
const (
	DateLayout          = "2006-01-02"       // <input type="date">
	DateTimeLocalLayout = "2006-01-02T15:04" // <input type="datetime-local">
	TimeLayout          = "15:04"
)

var (
	// ErrEmptyValue возвращается при пустом значении даты
	ErrEmptyValue = errors.New("types: empty date value")

	// ErrInvalidFormat возвращается, когда значение не подходит ни под один формат
	ErrInvalidFormat = errors.New("types: invalid date format")
)

// dateTimeLayouts форматы, которые содержат время; проверяются по порядку
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	DateTimeLocalLayout,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseDateTime приводит дату или дату со временем к моменту времени.
// Значение без времени нормализуется к началу дня в указанной локации.
// Значения без смещения интерпретируются в loc, значения с зоной (RFC3339) сохраняют свою зону.
// Второй результат равен true, если значение было датой без времени.
func ParseDateTime(value string, loc *time.Location) (time.Time, bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false, ErrEmptyValue
	}
	if loc == nil {
		loc = time.UTC
	}

	if t, err := time.ParseInLocation(DateLayout, value, loc); err == nil {
		return t, true, nil
	}

	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, false, nil
		}
	}

	return time.Time{}, false, fmt.Errorf("%w: %q", ErrInvalidFormat, value)
}

// CombineDateAndTime объединяет дату (YYYY-MM-DD) и время (HH:MM) в один момент времени
func CombineDateAndTime(date, clock string, loc *time.Location) (time.Time, error) {
	day, _, err := ParseDateTime(date, loc)
	if err != nil {
		return time.Time{}, err
	}

	clock = strings.TrimSpace(clock)
	if clock == "" {
		return StartOfDay(day), nil
	}

	hm, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: time %q", ErrInvalidFormat, clock)
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hm.Hour(), hm.Minute(), 0, 0, day.Location()), nil
}

// StartOfDay возвращает начало дня для момента t в его локации
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayRange возвращает полуинтервал [начало дня, начало следующего дня)
func DayRange(t time.Time) (time.Time, time.Time) {
	start := StartOfDay(t)
	return start, start.AddDate(0, 0, 1)
}
