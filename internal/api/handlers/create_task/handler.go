package create_task

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	"github.com/m04kA/SMC-SmartScheduler/internal/service/tasks/models"
	createTask "github.com/m04kA/SMC-SmartScheduler/internal/usecase/create_task"
	"github.com/m04kA/SMC-SmartScheduler/pkg/ptr"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSchedule    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgTimeConflict       = "интервал пересекается с другими задачами"
	msgProjectNotFound    = "проект не найден"
)

type Handler struct {
	useCase CreateTaskUseCase
	logger  Logger
}

func NewHandler(useCase CreateTaskUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/tasks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tasks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /tasks - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSchedule)
		return
	}

	task, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictErr *domain.ConflictError
		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /tasks - Time conflict: conflicts=%d", len(conflictErr.Conflicts))
			handlers.RespondConflict(w, msgTimeConflict, models.FromDomainTaskList(conflictErr.Conflicts, time.Now()).Tasks)

		case errors.Is(err, createTask.ErrInvalidInput):
			h.logger.Warn("POST /tasks - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createTask.ErrProjectNotFound):
			h.logger.Warn("POST /tasks - Project not found: project_id=%d", ptr.Value(req.ProjectID))
			handlers.RespondNotFound(w, msgProjectNotFound)

		default:
			h.logger.Error("POST /tasks - Failed to create task: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tasks - Task created successfully: task_id=%d, status=%s", task.ID, task.Status)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainTask(task, time.Now()))
}
