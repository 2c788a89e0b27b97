package settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SmartScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SmartScheduler/internal/api/middleware"
	settingsService "github.com/m04kA/SMC-SmartScheduler/internal/service/settings"
	"github.com/m04kA/SMC-SmartScheduler/internal/service/settings/models"
)

const msgInvalidRequestBody = "некорректное тело запроса"

// Handler рабочий день пользователя из X-User-ID
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

// Get GET /api/v1/settings/schedule
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "GET /settings/schedule"
	userID := middleware.UserIDFromContext(r.Context())

	result, err := h.service.Get(r.Context(), userID)
	if err != nil {
		h.respondError(w, op, userID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Update PUT /api/v1/settings/schedule
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "PUT /settings/schedule"
	userID := middleware.UserIDFromContext(r.Context())

	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), userID, &req)
	if err != nil {
		h.respondError(w, op, userID, err)
		return
	}

	h.logger.Info("%s - Settings updated: user_id=%d, window=%s-%s", op, userID, result.WorkStart, result.WorkEnd)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, userID int64, err error) {
	if errors.Is(err, settingsService.ErrInvalidInput) {
		h.logger.Warn("%s - Invalid input: user_id=%d, error=%v", op, userID, err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	h.logger.Error("%s - Failed: user_id=%d, error=%v", op, userID, err)
	handlers.RespondInternalError(w)
}
