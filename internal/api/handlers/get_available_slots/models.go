package get_available_slots

import (
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-SmartScheduler/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SmartScheduler/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	DurationMinutes int             `json:"durationMinutes"`
	WorkStart       string          `json:"workStart"`
	WorkEnd         string          `json:"workEnd"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot свободный интервал
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.String(),
		DurationMinutes: resp.DurationMinutes,
		WorkStart:       resp.WorkStart.String(),
		WorkEnd:         resp.WorkEnd.String(),
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(r *http.Request, userID int64) (*getAvailableSlots.Request, error) {
	q := r.URL.Query()

	date, err := types.ParseDate(q.Get("date"))
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	duration, err := handlers.QueryOptionalInt(r, "duration")
	if err != nil {
		return nil, fmt.Errorf("duration: %w", err)
	}

	req := &getAvailableSlots.Request{
		UserID:          userID,
		Date:            date,
		DurationMinutes: duration,
	}

	if v := q.Get("workStart"); v != "" {
		t, err := types.ParseTimeOfDay(v)
		if err != nil {
			return nil, fmt.Errorf("workStart: %w", err)
		}
		req.WorkStart = &t
	}
	if v := q.Get("workEnd"); v != "" {
		t, err := types.ParseTimeOfDay(v)
		if err != nil {
			return nil, fmt.Errorf("workEnd: %w", err)
		}
		req.WorkEnd = &t
	}

	return req, nil
}
