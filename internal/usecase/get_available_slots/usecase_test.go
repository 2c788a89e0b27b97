package get_available_slots

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
	if r := args.Get(0); r != nil {
		return r.([]*domain.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

type stubSettings struct {
	settings *domain.ScheduleSettings
	err      error
}

func (s stubSettings) Resolve(context.Context, int64) (*domain.ScheduleSettings, error) {
	return s.settings, s.err
}

type recordingMetrics struct {
	searches []bool
}

func (m *recordingMetrics) IncSlotSearch(found bool) { m.searches = append(m.searches, found) }

var day = types.DateOf(2025, time.May, 5)

func tod(h, m int) types.TimeOfDay {
	return types.MustTimeOfDay(h, m)
}

func timed(id int64, status domain.TaskStatus, startH, startM, endH, endM int) *domain.Task {
	start, end := tod(startH, startM), tod(endH, endM)
	return &domain.Task{ID: id, Status: status, ScheduledDate: &day, StartTime: &start, EndTime: &end}
}

func defaults() *domain.ScheduleSettings {
	return domain.DefaultScheduleSettings(1, tod(9, 0), tod(17, 0), 60)
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	override := tod(12, 0)

	tests := []struct {
		name       string
		settings   *domain.ScheduleSettings
		tasks      []*domain.Task
		req        *Request
		wantSlots  []Slot
		wantLength int
	}{
		{
			name:       "empty day gives the whole window start",
			settings:   defaults(),
			tasks:      []*domain.Task{},
			req:        &Request{UserID: 1, Date: day, DurationMinutes: ptr.Ptr(30)},
			wantSlots:  []Slot{{StartTime: tod(9, 0), EndTime: tod(9, 30)}},
			wantLength: 30,
		},
		{
			name:     "gaps between tasks, unsorted input",
			settings: defaults(),
			tasks: []*domain.Task{
				timed(2, domain.TaskStatusScheduled, 13, 0, 14, 0),
				timed(1, domain.TaskStatusScheduled, 10, 0, 11, 0),
			},
			req: &Request{UserID: 1, Date: day, DurationMinutes: ptr.Ptr(60)},
			wantSlots: []Slot{
				{StartTime: tod(9, 0), EndTime: tod(10, 0)},
				{StartTime: tod(11, 0), EndTime: tod(12, 0)},
				{StartTime: tod(14, 0), EndTime: tod(15, 0)},
			},
			wantLength: 60,
		},
		{
			name:     "cancelled tasks do not block",
			settings: defaults(),
			tasks: []*domain.Task{
				timed(1, domain.TaskStatusCancelled, 9, 0, 17, 0),
			},
			req:        &Request{UserID: 1, Date: day, DurationMinutes: ptr.Ptr(60)},
			wantSlots:  []Slot{{StartTime: tod(9, 0), EndTime: tod(10, 0)}},
			wantLength: 60,
		},
		{
			name:       "duration from settings",
			settings:   domain.DefaultScheduleSettings(1, tod(8, 0), tod(9, 0), 45),
			tasks:      []*domain.Task{},
			req:        &Request{UserID: 1, Date: day},
			wantSlots:  []Slot{{StartTime: tod(8, 0), EndTime: tod(8, 45)}},
			wantLength: 45,
		},
		{
			name:       "window override",
			settings:   defaults(),
			tasks:      []*domain.Task{timed(1, domain.TaskStatusScheduled, 9, 0, 12, 0)},
			req:        &Request{UserID: 1, Date: day, DurationMinutes: ptr.Ptr(30), WorkStart: &override},
			wantSlots:  []Slot{{StartTime: tod(12, 0), EndTime: tod(12, 30)}},
			wantLength: 30,
		},
		{
			name:       "fully booked",
			settings:   defaults(),
			tasks:      []*domain.Task{timed(1, domain.TaskStatusScheduled, 8, 0, 18, 0)},
			req:        &Request{UserID: 1, Date: day, DurationMinutes: ptr.Ptr(30)},
			wantSlots:  []Slot{},
			wantLength: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := &mockTaskRepo{}
			tasks.On("GetScheduledForDate", ctx, day, (*int64)(nil)).Return(tt.tasks, nil)
			metrics := &recordingMetrics{}

			uc := NewUseCase(tasks, stubSettings{settings: tt.settings}, metrics, logger.Nop())

			resp, err := uc.Execute(ctx, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSlots, resp.Slots)
			assert.Equal(t, tt.wantLength, resp.DurationMinutes)
			assert.Equal(t, []bool{len(tt.wantSlots) > 0}, metrics.searches)
		})
	}
}

func TestUseCase_Execute_Errors(t *testing.T) {
	ctx := context.Background()
	late := tod(18, 0)
	early := tod(8, 0)

	tests := []struct {
		name     string
		settings stubSettings
		repoErr  error
		req      *Request
		wantErr  error
	}{
		{
			name:     "missing date",
			settings: stubSettings{settings: defaults()},
			req:      &Request{UserID: 1, DurationMinutes: ptr.Ptr(30)},
			wantErr:  ErrInvalidInput,
		},
		{
			name:     "explicit zero duration",
			settings: stubSettings{settings: defaults()},
			req:      &Request{UserID: 1, Date: day, DurationMinutes: ptr.Ptr(0)},
			wantErr:  ErrInvalidInput,
		},
		{
			name:     "duration longer than a day",
			settings: stubSettings{settings: defaults()},
			req:      &Request{UserID: 1, Date: day, DurationMinutes: ptr.Ptr(domain.MaxTaskDurationMinutes + 1)},
			wantErr:  ErrInvalidInput,
		},
		{
			name:     "negative duration",
			settings: stubSettings{settings: defaults()},
			req:      &Request{UserID: 1, Date: day, DurationMinutes: ptr.Ptr(-5)},
			wantErr:  ErrInvalidInput,
		},
		{
			name:     "inverted window",
			settings: stubSettings{settings: defaults()},
			req:      &Request{UserID: 1, Date: day, DurationMinutes: ptr.Ptr(30), WorkStart: &late, WorkEnd: &early},
			wantErr:  ErrInvalidInput,
		},
		{
			name:     "settings failure",
			settings: stubSettings{err: errors.New("db down")},
			req:      &Request{UserID: 1, Date: day, DurationMinutes: ptr.Ptr(30)},
			wantErr:  ErrInternal,
		},
		{
			name:     "repository failure",
			settings: stubSettings{settings: defaults()},
			repoErr:  errors.New("db down"),
			req:      &Request{UserID: 1, Date: day, DurationMinutes: ptr.Ptr(30)},
			wantErr:  ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := &mockTaskRepo{}
			tasks.On("GetScheduledForDate", ctx, day, (*int64)(nil)).Return(nil, tt.repoErr)

			uc := NewUseCase(tasks, tt.settings, &recordingMetrics{}, logger.Nop())

			_, err := uc.Execute(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
