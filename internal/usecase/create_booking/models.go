package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
)

// Исходы отправки уведомления для метрик
const (
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
	NotificationSkipped = "skipped"
)

// Request модель запроса на создание бронирования
type Request struct {
	Fields domain.Fields // Значения полей формы в порядке отправки
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        string        // ID бронирования, он же содержимое QR-кода
	Fields    domain.Fields // Сохраненные поля
	SlotTime  *time.Time    // Забронированное время (nil для форм без даты)
	Status    string        // Статус бронирования
	CreatedAt time.Time     // Время создания

	Availability domain.Availability // Загрузка слота на момент проверки

	// NotificationWarning заполняется, если подтверждение не удалось отправить.
	// Бронирование при этом уже сохранено.
	NotificationWarning *string
}
