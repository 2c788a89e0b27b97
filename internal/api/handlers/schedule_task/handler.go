package schedule_task

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	"github.com/m04kA/SMC-SmartScheduler/internal/service/tasks/models"
	scheduleTask "github.com/m04kA/SMC-SmartScheduler/internal/usecase/schedule_task"
)

const (
	msgInvalidTaskID      = "некорректный ID задачи"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSchedule    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgTaskNotFound       = "задача не найдена"
	msgTaskClosed         = "завершенную или отмененную задачу нельзя запланировать"
	msgTimeConflict       = "интервал пересекается с другими задачами"
)

type Handler struct {
	useCase ScheduleTaskUseCase
	logger  Logger
}

func NewHandler(useCase ScheduleTaskUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/tasks/{taskId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	taskID, err := handlers.PathInt64(r, "taskId")
	if err != nil {
		h.logger.Warn("PATCH /tasks/{taskId}/schedule - Invalid task ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTaskID)
		return
	}

	var req ScheduleTaskRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /tasks/{taskId}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(taskID)
	if err != nil {
		h.logger.Warn("PATCH /tasks/{taskId}/schedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSchedule)
		return
	}

	task, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictErr *domain.ConflictError
		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("PATCH /tasks/{taskId}/schedule - Time conflict: task_id=%d, conflicts=%d", taskID, len(conflictErr.Conflicts))
			handlers.RespondConflict(w, msgTimeConflict, models.FromDomainTaskList(conflictErr.Conflicts, time.Now()).Tasks)

		case errors.Is(err, scheduleTask.ErrTaskNotFound):
			h.logger.Warn("PATCH /tasks/{taskId}/schedule - Task not found: task_id=%d", taskID)
			handlers.RespondNotFound(w, msgTaskNotFound)

		case errors.Is(err, scheduleTask.ErrTaskClosed):
			h.logger.Warn("PATCH /tasks/{taskId}/schedule - Task is closed: task_id=%d", taskID)
			handlers.RespondBadRequest(w, msgTaskClosed)

		case errors.Is(err, scheduleTask.ErrInvalidInput):
			h.logger.Warn("PATCH /tasks/{taskId}/schedule - Validation failed: task_id=%d, error=%v", taskID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /tasks/{taskId}/schedule - Failed to schedule task: task_id=%d, error=%v", taskID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /tasks/{taskId}/schedule - Task scheduled: task_id=%d, date=%s, slot=%s",
		task.ID, useCaseReq.Date, task.TimeSlotLabel())
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainTask(task, time.Now()))
}
