package verify_booking

import "github.com/m04kA/SMC-CheckinService/internal/domain"

// Request модель запроса на проверку билета
type Request struct {
	BookingID string // Отсканированное содержимое QR-кода
}

// Response результат проверки; ошибки бизнес-уровня сюда не попадают
type Response = domain.VerificationResult
