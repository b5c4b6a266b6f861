package notifier

// sendRequest тело запроса к EmailJS-совместимому API
type sendRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	AccessToken    string         `json:"accessToken,omitempty"`
	TemplateParams TemplateParams `json:"template_params"`
}

// TemplateParams параметры шаблона письма-подтверждения
type TemplateParams struct {
	ToName      string `json:"to_name"`
	ToEmail     string `json:"to_email"`
	BookingDate string `json:"booking_date"`
	BookingID   string `json:"booking_id"`
	QRCodeURL   string `json:"qr_code_url"`
}
