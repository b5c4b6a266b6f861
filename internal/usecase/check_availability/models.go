package check_availability

import "time"

// Request модель запроса проверки доступности слота
type Request struct {
	SlotTime *time.Time // Запрошенное время; nil для форм без даты
}

// Response модель ответа
type Response struct {
	SlotTime     *time.Time // Начало окна
	SlotEnd      *time.Time // Конец окна (не включительно)
	Available    bool       // Есть ли свободные места
	CurrentCount int        // Сколько бронирований уже в окне
	Max          int        // Вместимость слота
}
