package check_conflicts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	"github.com/m04kA/SMC-SmartScheduler/pkg/logger"
	"github.com/m04kA/SMC-SmartScheduler/pkg/ptr"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) GetScheduledForDate(ctx context.Context, date types.Date, excludeID *int64) ([]*domain.Task, error) {
	args := m.Called(ctx, date, excludeID)
	return args.Get(0).([]*domain.Task), args.Error(1)
}

type countingMetrics struct {
	conflicts map[string]int
}

func (m *countingMetrics) IncConflict(operation string) {
	if m.conflicts == nil {
		m.conflicts = make(map[string]int)
	}
	m.conflicts[operation]++
}

var day = types.DateOf(2025, time.May, 5)

func tod(h, m int) types.TimeOfDay {
	return types.MustTimeOfDay(h, m)
}

func timed(id int64, start, end types.TimeOfDay) *domain.Task {
	return &domain.Task{
		ID:            id,
		Status:        domain.TaskStatusScheduled,
		ScheduledDate: &day,
		StartTime:     &start,
		EndTime:       &end,
	}
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	dayTasks := []*domain.Task{
		timed(1, tod(9, 0), tod(10, 0)),
		timed(2, tod(10, 0), tod(11, 0)),
		timed(3, tod(13, 0), tod(14, 0)),
	}

	tests := []struct {
		name    string
		req     *Request
		wantIDs []int64
		wantErr error
	}{
		{name: "inside one task", req: &Request{Date: day, StartTime: tod(9, 15), EndTime: tod(9, 45)}, wantIDs: []int64{1}},
		{name: "spans two tasks", req: &Request{Date: day, StartTime: tod(9, 30), EndTime: tod(10, 30)}, wantIDs: []int64{1, 2}},
		{name: "touching end is free", req: &Request{Date: day, StartTime: tod(11, 0), EndTime: tod(13, 0)}, wantIDs: []int64{}},
		{name: "excluded task ignored", req: &Request{Date: day, StartTime: tod(9, 0), EndTime: tod(10, 0), ExcludeTaskID: ptr.Ptr(int64(1))}, wantIDs: []int64{}},
		{name: "inverted interval", req: &Request{Date: day, StartTime: tod(12, 0), EndTime: tod(11, 0)}, wantErr: ErrInvalidInput},
		{name: "empty interval", req: &Request{Date: day, StartTime: tod(12, 0), EndTime: tod(12, 0)}, wantErr: ErrInvalidInput},
		{name: "missing date", req: &Request{StartTime: tod(9, 0), EndTime: tod(10, 0)}, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockTaskRepo{}
			metrics := &countingMetrics{}
			uc := NewUseCase(repo, metrics, logger.Nop())

			repo.On("GetScheduledForDate", ctx, day, mock.Anything).Return(dayTasks, nil)

			resp, err := uc.Execute(ctx, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "GetScheduledForDate", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)

			ids := make([]int64, 0, len(resp.Conflicts))
			for _, c := range resp.Conflicts {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, len(tt.wantIDs) > 0, resp.HasConflicts)
			if resp.HasConflicts {
				assert.Equal(t, 1, metrics.conflicts["check"])
			}
		})
	}
}

func TestUseCase_Find_SkipsCancelledAndUntimed(t *testing.T) {
	ctx := context.Background()
	repo := &mockTaskRepo{}
	uc := NewUseCase(repo, &countingMetrics{}, logger.Nop())

	cancelled := timed(1, tod(9, 0), tod(10, 0))
	cancelled.Status = domain.TaskStatusCancelled
	allDay := timed(2, tod(0, 0), tod(23, 59))
	allDay.AllDay = true

	repo.On("GetScheduledForDate", ctx, day, (*int64)(nil)).Return([]*domain.Task{cancelled, allDay}, nil)

	interval, err := validateRequest(&Request{Date: day, StartTime: tod(9, 0), EndTime: tod(10, 0)})
	require.NoError(t, err)

	conflicts, err := uc.Find(ctx, day, interval, nil)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestUseCase_Find_RepositoryError(t *testing.T) {
	ctx := context.Background()
	repo := &mockTaskRepo{}
	uc := NewUseCase(repo, &countingMetrics{}, logger.Nop())

	repo.On("GetScheduledForDate", ctx, day, (*int64)(nil)).Return([]*domain.Task(nil), errors.New("db down"))

	_, err := uc.Execute(ctx, &Request{Date: day, StartTime: tod(9, 0), EndTime: tod(10, 0)})
	assert.ErrorIs(t, err, ErrInternal)
}
