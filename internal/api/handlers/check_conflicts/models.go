package check_conflicts

import (
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SmartScheduler/internal/service/tasks/models"
	checkConflicts "github.com/m04kA/SMC-SmartScheduler/internal/usecase/check_conflicts"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// ConflictsResponse HTTP response model
type ConflictsResponse struct {
	HasConflicts bool                  `json:"hasConflicts"`
	Conflicts    []models.TaskResponse `json:"conflicts"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(r *http.Request) (*checkConflicts.Request, error) {
	q := r.URL.Query()

	date, err := types.ParseDate(q.Get("date"))
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	start, err := types.ParseTimeOfDay(q.Get("startTime"))
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}
	end, err := types.ParseTimeOfDay(q.Get("endTime"))
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}
	exclude, err := handlers.QueryInt64(r, "excludeTaskId")
	if err != nil {
		return nil, fmt.Errorf("excludeTaskId: %w", err)
	}

	return &checkConflicts.Request{
		Date:          date,
		StartTime:     start,
		EndTime:       end,
		ExcludeTaskID: exclude,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkConflicts.Response, now time.Time) *ConflictsResponse {
	return &ConflictsResponse{
		HasConflicts: resp.HasConflicts,
		Conflicts:    models.FromDomainTaskList(resp.Conflicts, now).Tasks,
	}
}
