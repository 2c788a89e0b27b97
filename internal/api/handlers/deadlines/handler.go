package deadlines

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/api/handlers"
	deadlineService "github.com/m04kA/SMC-SmartScheduler/internal/service/deadlines"
	"github.com/m04kA/SMC-SmartScheduler/internal/service/deadlines/models"
)

const (
	msgInvalidDeadlineID  = "некорректный ID дедлайна"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректные параметры запроса"
	msgDeadlineNotFound   = "дедлайн не найден"
)

type Handler struct {
	service DeadlineService
	logger  Logger
}

func NewHandler(service DeadlineService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/deadlines
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "POST /deadlines"

	var req models.CreateDeadlineRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, op, 0, err)
		return
	}

	h.logger.Info("%s - Deadline created: deadline_id=%d, due=%s", op, result.ID, result.DueDate.Format(time.RFC3339))
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// List GET /api/v1/deadlines
// Query params: from, to (RFC3339), completed, type, projectId
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "GET /deadlines"

	req, err := listRequest(r)
	if err != nil {
		h.logger.Warn("%s - Invalid parameters: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.respondError(w, op, 0, err)
		return
	}

	h.logger.Info("%s - Deadlines retrieved successfully: count=%d", op, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Recurring GET /api/v1/deadlines/recurring
func (h *Handler) Recurring(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Recurring(r.Context())
	if err != nil {
		h.respondError(w, "GET /deadlines/recurring", 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Analytics GET /api/v1/deadlines/analytics
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Analytics(r.Context())
	if err != nil {
		h.respondError(w, "GET /deadlines/analytics", 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/deadlines/{deadlineId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "GET /deadlines/{deadlineId}"

	id, ok := h.deadlineID(w, r, op)
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, op, id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Update PUT /api/v1/deadlines/{deadlineId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "PUT /deadlines/{deadlineId}"

	id, ok := h.deadlineID(w, r, op)
	if !ok {
		return
	}

	var req models.UpdateDeadlineRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, op, id, err)
		return
	}

	h.logger.Info("%s - Deadline updated: deadline_id=%d", op, id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Complete PATCH /api/v1/deadlines/{deadlineId}/complete
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	const op = "PATCH /deadlines/{deadlineId}/complete"

	id, ok := h.deadlineID(w, r, op)
	if !ok {
		return
	}

	result, err := h.service.Complete(r.Context(), id)
	if err != nil {
		h.respondError(w, op, id, err)
		return
	}

	h.logger.Info("%s - Deadline completed: deadline_id=%d", op, id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Extend PATCH /api/v1/deadlines/{deadlineId}/extend
func (h *Handler) Extend(w http.ResponseWriter, r *http.Request) {
	const op = "PATCH /deadlines/{deadlineId}/extend"

	id, ok := h.deadlineID(w, r, op)
	if !ok {
		return
	}

	var req models.ExtendDeadlineRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Extend(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, op, id, err)
		return
	}

	h.logger.Info("%s - Deadline extended: deadline_id=%d, due=%s", op, id, result.DueDate.Format(time.RFC3339))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/deadlines/{deadlineId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "DELETE /deadlines/{deadlineId}"

	id, ok := h.deadlineID(w, r, op)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, op, id, err)
		return
	}

	h.logger.Info("%s - Deadline deleted: deadline_id=%d", op, id)
	handlers.RespondNoContent(w)
}

func (h *Handler) deadlineID(w http.ResponseWriter, r *http.Request, op string) (int64, bool) {
	id, err := handlers.PathInt64(r, "deadlineId")
	if err != nil {
		h.logger.Warn("%s - Invalid deadline ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidDeadlineID)
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, op string, id int64, err error) {
	switch {
	case errors.Is(err, deadlineService.ErrDeadlineNotFound):
		h.logger.Warn("%s - Deadline not found: deadline_id=%d", op, id)
		handlers.RespondNotFound(w, msgDeadlineNotFound)

	case errors.Is(err, deadlineService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", op, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Failed: deadline_id=%d, error=%v", op, id, err)
		handlers.RespondInternalError(w)
	}
}

func listRequest(r *http.Request) (*models.ListDeadlinesRequest, error) {
	from, err := queryTime(r, "from")
	if err != nil {
		return nil, err
	}
	to, err := queryTime(r, "to")
	if err != nil {
		return nil, err
	}
	completed, err := handlers.QueryBool(r, "completed")
	if err != nil {
		return nil, err
	}
	projectID, err := handlers.QueryInt64(r, "projectId")
	if err != nil {
		return nil, err
	}

	return &models.ListDeadlinesRequest{
		From:      from,
		To:        to,
		Completed: completed,
		Type:      handlers.QueryString(r, "type"),
		ProjectID: projectID,
	}, nil
}

func queryTime(r *http.Request, name string) (*time.Time, error) {
	raw := handlers.QueryString(r, name)
	if raw == nil {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &t, nil
}
