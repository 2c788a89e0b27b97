package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SmartScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SmartScheduler/internal/api/middleware"
	getAvailableSlots "github.com/m04kA/SMC-SmartScheduler/internal/usecase/get_available_slots"
)

const (
	msgInvalidParams = "ожидаются параметры date (YYYY-MM-DD), duration (минуты), workStart и workEnd (HH:MM)"
	msgInvalidWindow = "некорректная длительность или рабочий интервал"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule/available-slots
// Query params: date (обязательный), duration, workStart, workEnd
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	useCaseReq, err := ToUseCaseRequest(r, userID)
	if err != nil {
		h.logger.Warn("GET /schedule/available-slots - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /schedule/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("GET /schedule/available-slots - Failed to get slots: user_id=%d, date=%s, error=%v",
				userID, useCaseReq.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedule/available-slots - Slots retrieved successfully: user_id=%d, date=%s, slots_count=%d",
		userID, result.Date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
