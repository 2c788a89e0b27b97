package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SmartScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SmartScheduler/internal/api/middleware"
	getAvailableSlots "github.com/m04kA/SMC-SmartScheduler/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SmartScheduler/pkg/logger"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*getAvailableSlots.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

func get(h *Handler, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule/available-slots?"+query, nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), 5))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_OK(t *testing.T) {
	uc := &mockUseCase{}
	h := NewHandler(uc, logger.Nop())

	day := types.DateOf(2025, time.May, 5)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *getAvailableSlots.Request) bool {
		return req.UserID == 5 && req.Date.Equal(day) && req.DurationMinutes != nil && *req.DurationMinutes == 30 &&
			req.WorkStart != nil && req.WorkStart.String() == "08:00" && req.WorkEnd == nil
	})).Return(&getAvailableSlots.Response{
		Date:            day,
		DurationMinutes: 30,
		WorkStart:       types.MustTimeOfDay(8, 0),
		WorkEnd:         types.MustTimeOfDay(17, 0),
		Slots: []getAvailableSlots.Slot{
			{StartTime: types.MustTimeOfDay(8, 0), EndTime: types.MustTimeOfDay(8, 30)},
			{StartTime: types.MustTimeOfDay(12, 0), EndTime: types.MustTimeOfDay(12, 30)},
		},
	}, nil)

	rec := get(h, "date=2025-05-05&duration=30&workStart=08:00")
	require.Equal(t, http.StatusOK, rec.Code)

	var body AvailableSlotsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "2025-05-05", body.Date)
	assert.Equal(t, "08:00", body.WorkStart)
	assert.Equal(t, "17:00", body.WorkEnd)
	require.Len(t, body.Slots, 2)
	assert.Equal(t, AvailableSlot{StartTime: "12:00", EndTime: "12:30"}, body.Slots[1])
	uc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		ucErr      error
		wantStatus int
	}{
		{name: "missing date", query: "duration=30", wantStatus: http.StatusBadRequest},
		{name: "bad duration", query: "date=2025-05-05&duration=half", wantStatus: http.StatusBadRequest},
		{name: "bad work start", query: "date=2025-05-05&workStart=9am", wantStatus: http.StatusBadRequest},
		{name: "bad work end", query: "date=2025-05-05&workEnd=25:00", wantStatus: http.StatusBadRequest},
		{name: "invalid window", query: "date=2025-05-05", ucErr: getAvailableSlots.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", query: "date=2025-05-05", ucErr: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}
			h := NewHandler(uc, logger.Nop())

			rec := get(h, tt.query)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantStatus, body.Code)
			if tt.ucErr == nil {
				uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestHandler_ZeroDuration(t *testing.T) {
	// валидация срабатывает до обращения к репозиторию и настройкам
	uc := getAvailableSlots.NewUseCase(nil, nil, nil, logger.Nop())
	h := NewHandler(uc, logger.Nop())

	for _, query := range []string{"date=2025-05-05&duration=0", "date=2025-05-05&duration=-15"} {
		rec := get(h, query)
		require.Equal(t, http.StatusBadRequest, rec.Code, query)

		var body handlers.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, msgInvalidWindow, body.Message)
	}
}
