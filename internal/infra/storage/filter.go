package storage

import (
	"strings"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
)

// MatchesFilter проверяет бронирование на соответствие фильтру списка.
// Используется хранилищами, которые фильтруют на стороне приложения.
func MatchesFilter(b *domain.Booking, filter domain.BookingsFilter) bool {
	if filter.Status != nil && b.Status != *filter.Status {
		return false
	}

	if filter.SlotFrom != nil || filter.SlotTo != nil {
		if b.SlotTime == nil {
			return false
		}
		if filter.SlotFrom != nil && b.SlotTime.Before(*filter.SlotFrom) {
			return false
		}
		if filter.SlotTo != nil && !b.SlotTime.Before(*filter.SlotTo) {
			return false
		}
	}

	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		name, _ := b.Fields.Get(domain.FieldNameFullName)
		email, _ := b.Fields.Get(domain.FieldNameEmail)
		if !strings.Contains(strings.ToLower(name), search) && !strings.Contains(strings.ToLower(email), search) {
			return false
		}
	}

	return true
}
