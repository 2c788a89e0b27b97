package tasks

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	taskService "github.com/m04kA/SMC-SmartScheduler/internal/service/tasks"
	"github.com/m04kA/SMC-SmartScheduler/internal/service/tasks/models"
)

const (
	msgInvalidTaskID      = "некорректный ID задачи"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректные параметры запроса"
	msgInvalidCalendar    = "ожидаются параметры year и month"
	msgTaskNotFound       = "задача не найдена"
	msgTimeConflict       = "интервал пересекается с другими задачами"
)

// Handler обрабатывает запросы к задачам, не требующие проверки расписания
type Handler struct {
	service TaskService
	logger  Logger
}

func NewHandler(service TaskService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/tasks
// Query params: status, priority, category, projectId, dateFrom, dateTo, search, limit, offset
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req, err := listRequest(r)
	if err != nil {
		h.logger.Warn("GET /tasks - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.respondError(w, "GET /tasks", 0, err)
		return
	}

	h.logger.Info("GET /tasks - Tasks retrieved successfully: count=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Today GET /api/v1/tasks/today
func (h *Handler) Today(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, "GET /tasks/today", h.service.Today)
}

// Week GET /api/v1/tasks/week
func (h *Handler) Week(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, "GET /tasks/week", h.service.ThisWeek)
}

// Get GET /api/v1/tasks/{taskId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	h.withTask(w, r, "GET /tasks/{taskId}", h.service.GetByID)
}

// Complete POST /api/v1/tasks/{taskId}/complete
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	h.withTask(w, r, "POST /tasks/{taskId}/complete", h.service.Complete)
}

// Start POST /api/v1/tasks/{taskId}/start
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	h.withTask(w, r, "POST /tasks/{taskId}/start", h.service.Start)
}

// Pause POST /api/v1/tasks/{taskId}/pause
func (h *Handler) Pause(w http.ResponseWriter, r *http.Request) {
	h.withTask(w, r, "POST /tasks/{taskId}/pause", h.service.Pause)
}

// UpdateStatus PATCH /api/v1/tasks/{taskId}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	const op = "PATCH /tasks/{taskId}/status"

	var req models.UpdateStatusRequest
	h.withBody(w, r, op, &req, func(ctx context.Context, id int64) (*models.TaskResponse, error) {
		return h.service.UpdateStatus(ctx, id, &req)
	})
}

// UpdateProgress PATCH /api/v1/tasks/{taskId}/progress
func (h *Handler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	const op = "PATCH /tasks/{taskId}/progress"

	var req models.UpdateProgressRequest
	h.withBody(w, r, op, &req, func(ctx context.Context, id int64) (*models.TaskResponse, error) {
		return h.service.UpdateProgress(ctx, id, &req)
	})
}

// Delete DELETE /api/v1/tasks/{taskId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "DELETE /tasks/{taskId}"

	taskID, err := handlers.PathInt64(r, "taskId")
	if err != nil {
		h.logger.Warn("%s - Invalid task ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidTaskID)
		return
	}

	if err := h.service.Delete(r.Context(), taskID); err != nil {
		h.respondError(w, op, taskID, err)
		return
	}

	h.logger.Info("%s - Task deleted: task_id=%d", op, taskID)
	handlers.RespondNoContent(w)
}

// Stats GET /api/v1/tasks/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.respondError(w, "GET /tasks/stats", 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, stats)
}

// Calendar GET /api/v1/tasks/calendar?year=2025&month=5
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	const op = "GET /tasks/calendar"

	year, errYear := strconv.Atoi(r.URL.Query().Get("year"))
	month, errMonth := strconv.Atoi(r.URL.Query().Get("month"))
	if errYear != nil || errMonth != nil {
		h.logger.Warn("%s - Invalid parameters: year=%q, month=%q", op, r.URL.Query().Get("year"), r.URL.Query().Get("month"))
		handlers.RespondBadRequest(w, msgInvalidCalendar)
		return
	}

	result, err := h.service.Calendar(r.Context(), year, month)
	if err != nil {
		h.respondError(w, op, 0, err)
		return
	}

	h.logger.Info("%s - Calendar retrieved: %d-%02d, days=%d", op, year, month, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondList(w http.ResponseWriter, r *http.Request, op string, fn func(ctx context.Context) (*models.TaskListResponse, error)) {
	result, err := fn(r.Context())
	if err != nil {
		h.respondError(w, op, 0, err)
		return
	}

	h.logger.Info("%s - Tasks retrieved successfully: count=%d", op, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) withTask(w http.ResponseWriter, r *http.Request, op string, fn func(ctx context.Context, id int64) (*models.TaskResponse, error)) {
	taskID, err := handlers.PathInt64(r, "taskId")
	if err != nil {
		h.logger.Warn("%s - Invalid task ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidTaskID)
		return
	}

	result, err := fn(r.Context(), taskID)
	if err != nil {
		h.respondError(w, op, taskID, err)
		return
	}

	h.logger.Info("%s - OK: task_id=%d, status=%s", op, result.ID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) withBody(w http.ResponseWriter, r *http.Request, op string, dst interface{}, fn func(ctx context.Context, id int64) (*models.TaskResponse, error)) {
	if _, err := handlers.PathInt64(r, "taskId"); err != nil {
		h.logger.Warn("%s - Invalid task ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidTaskID)
		return
	}

	if err := handlers.DecodeJSON(r, dst); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	h.withTask(w, r, op, fn)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, taskID int64, err error) {
	var conflictErr *domain.ConflictError
	switch {
	case errors.As(err, &conflictErr):
		h.logger.Warn("%s - Time conflict: task_id=%d, conflicts=%d", op, taskID, len(conflictErr.Conflicts))
		handlers.RespondConflict(w, msgTimeConflict, models.FromDomainTaskList(conflictErr.Conflicts, time.Now()).Tasks)

	case errors.Is(err, taskService.ErrTaskNotFound):
		h.logger.Warn("%s - Task not found: task_id=%d", op, taskID)
		handlers.RespondNotFound(w, msgTaskNotFound)

	case errors.Is(err, taskService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", op, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Failed: task_id=%d, error=%v", op, taskID, err)
		handlers.RespondInternalError(w)
	}
}

func listRequest(r *http.Request) (*models.ListTasksRequest, error) {
	projectID, err := handlers.QueryInt64(r, "projectId")
	if err != nil {
		return nil, err
	}
	limit, err := handlers.QueryInt(r, "limit")
	if err != nil {
		return nil, err
	}
	offset, err := handlers.QueryInt(r, "offset")
	if err != nil {
		return nil, err
	}

	return &models.ListTasksRequest{
		Status:    handlers.QueryString(r, "status"),
		Priority:  handlers.QueryString(r, "priority"),
		Category:  handlers.QueryString(r, "category"),
		ProjectID: projectID,
		DateFrom:  handlers.QueryString(r, "dateFrom"),
		DateTo:    handlers.QueryString(r, "dateTo"),
		Search:    handlers.QueryString(r, "search"),
		Limit:     limit,
		Offset:    offset,
	}, nil
}
