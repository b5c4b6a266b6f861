package get_form

import (
	"net/http"

	"github.com/m04kA/SMC-CheckinService/internal/api/handlers"
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

// Handle GET /api/v1/form
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	form, err := h.service.GetForm(r.Context())
	if err != nil {
		h.logger.Error("GET /form - Failed to get form: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, form)
}
