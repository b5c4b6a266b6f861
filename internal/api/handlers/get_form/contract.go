package get_form

import (
	"context"

	"github.com/m04kA/SMC-CheckinService/internal/service/settings/models"
)

type SettingsService interface {
	GetForm(ctx context.Context) (*models.FormResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
