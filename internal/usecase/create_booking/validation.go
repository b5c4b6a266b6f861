package create_booking

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
	"github.com/m04kA/SMC-CheckinService/pkg/types"
)

// normalizeFields оставляет только поля, описанные в форме, в порядке отправки.
// Значения обрезаются по краям, повторяющиеся имена запрещены.
func normalizeFields(submitted domain.Fields, form []domain.FormField) (domain.Fields, error) {
	known := lo.KeyBy(form, func(f domain.FormField) string {
		return f.Name
	})

	seen := make(map[string]struct{}, len(submitted))
	result := make(domain.Fields, 0, len(submitted))
	for _, field := range submitted {
		if _, ok := seen[field.Name]; ok {
			return nil, fmt.Errorf("%w: field %q submitted twice", ErrInvalidInput, field.Name)
		}
		seen[field.Name] = struct{}{}

		if _, ok := known[field.Name]; !ok {
			continue
		}
		result = append(result, domain.Field{Name: field.Name, Value: strings.TrimSpace(field.Value)})
	}

	return result, nil
}

// validateFields проверяет значения по схеме формы
func validateFields(fields domain.Fields, form []domain.FormField, loc *time.Location) error {
	for _, def := range form {
		value, _ := fields.Get(def.Name)

		if value == "" {
			if def.Required {
				return fmt.Errorf("%w: %s is required", ErrInvalidInput, def.Name)
			}
			continue
		}

		if utf8.RuneCountInString(value) > domain.MaxFieldValueLength {
			return fmt.Errorf("%w: %s is longer than %d characters", ErrInvalidInput, def.Name, domain.MaxFieldValueLength)
		}

		if err := validateValue(def, value, loc); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidInput, def.Name, err)
		}
	}

	return nil
}

// validateValue проверяет одно значение по типу поля
func validateValue(def domain.FormField, value string, loc *time.Location) error {
	switch def.Type {
	case domain.FieldText:
		if def.MinLength != nil && utf8.RuneCountInString(value) < *def.MinLength {
			return fmt.Errorf("must be at least %d characters", *def.MinLength)
		}

	case domain.FieldEmail:
		addr, err := mail.ParseAddress(value)
		if err != nil || addr.Address != value {
			return fmt.Errorf("invalid email address")
		}

	case domain.FieldTel:
		minDigits := domain.DefaultTelMinLength
		if def.MinLength != nil {
			minDigits = *def.MinLength
		}
		digits := 0
		for _, r := range value {
			switch {
			case unicode.IsDigit(r):
				digits++
			case strings.ContainsRune("+-() ", r):
			default:
				return fmt.Errorf("unexpected character %q in phone number", r)
			}
		}
		if digits < minDigits {
			return fmt.Errorf("must contain at least %d digits", minDigits)
		}

	case domain.FieldNumber:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("must be a number")
		}
		if def.Min != nil && n < *def.Min {
			return fmt.Errorf("must be at least %v", *def.Min)
		}
		if def.Max != nil && n > *def.Max {
			return fmt.Errorf("must be at most %v", *def.Max)
		}

	case domain.FieldDate, domain.FieldDateTimeLocal:
		if _, _, err := types.ParseDateTime(value, loc); err != nil {
			return err
		}

	case domain.FieldTime:
		if _, err := time.Parse(types.TimeLayout, value); err != nil {
			return fmt.Errorf("must be HH:MM")
		}
	}

	return nil
}

// slotTimeFromFields вычисляет время слота по первому полю с датой формы.
// Если дата без времени, берется первое поле типа time, иначе начало дня.
// Для формы без даты или с пустой необязательной датой возвращает nil.
func slotTimeFromFields(fields domain.Fields, settings *domain.Settings, loc *time.Location) (*time.Time, error) {
	dateDef, ok := settings.DateField()
	if !ok {
		return nil, nil
	}

	dateValue, _ := fields.Get(dateDef.Name)
	if dateValue == "" {
		return nil, nil
	}

	slot, dateOnly, err := types.ParseDateTime(dateValue, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, dateDef.Name, err)
	}

	if dateOnly {
		if timeDef, found := lo.Find(settings.Form, func(f domain.FormField) bool {
			return f.Type == domain.FieldTime
		}); found {
			clock, _ := fields.Get(timeDef.Name)
			slot, err = types.CombineDateAndTime(dateValue, clock, loc)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, timeDef.Name, err)
			}
		}
	}

	return &slot, nil
}
