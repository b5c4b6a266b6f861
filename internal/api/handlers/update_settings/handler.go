package update_settings

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-CheckinService/internal/api/handlers"
	"github.com/m04kA/SMC-CheckinService/internal/api/middleware"
	"github.com/m04kA/SMC-CheckinService/internal/service/settings"
	"github.com/m04kA/SMC-CheckinService/internal/service/settings/models"
)

const (
	msgInvalidRequest  = "некорректное тело запроса"
	msgNothingToUpdate = "нужно передать formFields или systemSettings"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	if req.FormFields == nil && req.SystemSettings == nil {
		handlers.RespondBadRequest(w, msgNothingToUpdate)
		return
	}

	admin := "unknown"
	if claims, ok := middleware.GetClaims(r.Context()); ok {
		admin = claims.Email
	}

	resp, err := h.service.Update(r.Context(), &req)
	if err != nil {
		if errors.Is(err, settings.ErrInvalidInput) {
			handlers.RespondBadRequest(w, strings.TrimPrefix(err.Error(), settings.ErrInvalidInput.Error()+": "))
			return
		}
		h.logger.Error("PUT /admin/settings - Failed to update settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/settings - Settings updated by %s", admin)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
