package check_conflicts

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/api/handlers"
	checkConflicts "github.com/m04kA/SMC-SmartScheduler/internal/usecase/check_conflicts"
)

const (
	msgInvalidParams   = "ожидаются параметры date (YYYY-MM-DD), startTime и endTime (HH:MM)"
	msgInvalidInterval = "некорректный интервал"
)

type Handler struct {
	useCase CheckConflictsUseCase
	logger  Logger
}

func NewHandler(useCase CheckConflictsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule/conflicts
// Query params: date, startTime, endTime (обязательные), excludeTaskId
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r)
	if err != nil {
		h.logger.Warn("GET /schedule/conflicts - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkConflicts.ErrInvalidInput):
			h.logger.Warn("GET /schedule/conflicts - Invalid interval: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("GET /schedule/conflicts - Failed to check conflicts: date=%s, error=%v", useCaseReq.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedule/conflicts - Checked: date=%s, interval=%s-%s, conflicts=%d",
		useCaseReq.Date, useCaseReq.StartTime, useCaseReq.EndTime, len(result.Conflicts))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, time.Now()))
}
