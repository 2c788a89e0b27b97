package update_task

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	"github.com/m04kA/SMC-SmartScheduler/internal/service/tasks/models"
	updateTask "github.com/m04kA/SMC-SmartScheduler/internal/usecase/update_task"
)

const (
	msgInvalidTaskID      = "некорректный ID задачи"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSchedule    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgTaskNotFound       = "задача не найдена"
	msgProjectNotFound    = "проект не найден"
	msgTimeConflict       = "интервал пересекается с другими задачами"
)

type Handler struct {
	useCase UpdateTaskUseCase
	logger  Logger
}

func NewHandler(useCase UpdateTaskUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/tasks/{taskId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	taskID, err := handlers.PathInt64(r, "taskId")
	if err != nil {
		h.logger.Warn("PUT /tasks/{taskId} - Invalid task ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTaskID)
		return
	}

	var req UpdateTaskRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /tasks/{taskId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(taskID)
	if err != nil {
		h.logger.Warn("PUT /tasks/{taskId} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSchedule)
		return
	}

	task, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictErr *domain.ConflictError
		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("PUT /tasks/{taskId} - Time conflict: task_id=%d, conflicts=%d", taskID, len(conflictErr.Conflicts))
			handlers.RespondConflict(w, msgTimeConflict, models.FromDomainTaskList(conflictErr.Conflicts, time.Now()).Tasks)

		case errors.Is(err, updateTask.ErrTaskNotFound):
			h.logger.Warn("PUT /tasks/{taskId} - Task not found: task_id=%d", taskID)
			handlers.RespondNotFound(w, msgTaskNotFound)

		case errors.Is(err, updateTask.ErrProjectNotFound):
			h.logger.Warn("PUT /tasks/{taskId} - Project not found: task_id=%d", taskID)
			handlers.RespondNotFound(w, msgProjectNotFound)

		case errors.Is(err, updateTask.ErrInvalidInput):
			h.logger.Warn("PUT /tasks/{taskId} - Validation failed: task_id=%d, error=%v", taskID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /tasks/{taskId} - Failed to update task: task_id=%d, error=%v", taskID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /tasks/{taskId} - Task updated successfully: task_id=%d", task.ID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainTask(task, time.Now()))
}
