package projects

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SmartScheduler/internal/api/handlers"
	projectService "github.com/m04kA/SMC-SmartScheduler/internal/service/projects"
	"github.com/m04kA/SMC-SmartScheduler/internal/service/projects/models"
)

const (
	msgInvalidProjectID   = "некорректный ID проекта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректные параметры запроса"
	msgProjectNotFound    = "проект не найден"

	defaultDaysAhead = 7
)

type Handler struct {
	service ProjectService
	logger  Logger
}

func NewHandler(service ProjectService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/projects
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "POST /projects"

	var req models.CreateProjectRequest
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

	h.logger.Info("%s - Project created: project_id=%d, name=%q", op, result.ID, result.Name)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// List GET /api/v1/projects?status=active&includeCompleted=true
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "GET /projects"

	includeCompleted, err := handlers.QueryBool(r, "includeCompleted")
	if err != nil {
		h.logger.Warn("%s - Invalid parameters: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	req := &models.ListProjectsRequest{
		Status:           handlers.QueryString(r, "status"),
		IncludeCompleted: includeCompleted != nil && *includeCompleted,
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.respondError(w, op, 0, err)
		return
	}

	h.logger.Info("%s - Projects retrieved successfully: count=%d", op, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Upcoming GET /api/v1/projects/upcoming?daysAhead=7
func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) {
	const op = "GET /projects/upcoming"

	daysAhead, err := handlers.QueryInt(r, "daysAhead")
	if err != nil {
		h.logger.Warn("%s - Invalid parameters: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	if daysAhead == 0 {
		daysAhead = defaultDaysAhead
	}

	result, err := h.service.Upcoming(r.Context(), daysAhead)
	if err != nil {
		h.respondError(w, op, 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/projects/{projectId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "GET /projects/{projectId}"

	id, err := handlers.PathInt64(r, "projectId")
	if err != nil {
		h.logger.Warn("%s - Invalid project ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidProjectID)
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, op, id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Recalculate POST /api/v1/projects/{projectId}/recalculate
func (h *Handler) Recalculate(w http.ResponseWriter, r *http.Request) {
	const op = "POST /projects/{projectId}/recalculate"

	id, err := handlers.PathInt64(r, "projectId")
	if err != nil {
		h.logger.Warn("%s - Invalid project ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidProjectID)
		return
	}

	result, err := h.service.RecalculateProgress(r.Context(), id)
	if err != nil {
		h.respondError(w, op, id, err)
		return
	}

	h.logger.Info("%s - Progress recalculated: project_id=%d, progress=%.1f", op, id, result.ProgressPercentage)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, id int64, err error) {
	switch {
	case errors.Is(err, projectService.ErrProjectNotFound):
		h.logger.Warn("%s - Project not found: project_id=%d", op, id)
		handlers.RespondNotFound(w, msgProjectNotFound)

	case errors.Is(err, projectService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", op, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Failed: project_id=%d, error=%v", op, id, err)
		handlers.RespondInternalError(w)
	}
}
