package schedule

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-SmartScheduler/internal/api/handlers"
	scheduleService "github.com/m04kA/SMC-SmartScheduler/internal/service/schedule"
	"github.com/m04kA/SMC-SmartScheduler/internal/service/schedule/models"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

const msgInvalidParams = "некорректные параметры запроса"

type Handler struct {
	service FeedService
	logger  Logger
}

func NewHandler(service FeedService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Feed GET /api/v1/schedule?startDate=2025-05-01&endDate=2025-05-07
// Query params: type (task|deadline), status, category, projectId, completed
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	const op = "GET /schedule"

	req, err := feedRequest(r)
	if err != nil {
		h.logger.Warn("%s - Invalid parameters: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.Feed(r.Context(), req)
	if err != nil {
		if errors.Is(err, scheduleService.ErrInvalidInput) {
			h.logger.Warn("%s - Invalid input: %v", op, err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("%s - Failed to build feed: %v", op, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("%s - Feed built: %s..%s, items=%d", op, result.StartDate, result.EndDate, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func feedRequest(r *http.Request) (*models.FeedRequest, error) {
	start, err := types.ParseDate(r.URL.Query().Get("startDate"))
	if err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}
	end, err := types.ParseDate(r.URL.Query().Get("endDate"))
	if err != nil {
		return nil, fmt.Errorf("endDate: %w", err)
	}
	projectID, err := handlers.QueryInt64(r, "projectId")
	if err != nil {
		return nil, fmt.Errorf("projectId: %w", err)
	}
	completed, err := handlers.QueryBool(r, "completed")
	if err != nil {
		return nil, fmt.Errorf("completed: %w", err)
	}

	return &models.FeedRequest{
		StartDate: start,
		EndDate:   end,
		Type:      handlers.QueryString(r, "type"),
		Status:    handlers.QueryString(r, "status"),
		Category:  handlers.QueryString(r, "category"),
		ProjectID: projectID,
		Completed: completed,
	}, nil
}
