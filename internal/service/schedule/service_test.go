package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	"github.com/m04kA/SMC-SmartScheduler/internal/service/schedule/models"
	"github.com/m04kA/SMC-SmartScheduler/pkg/logger"
	"github.com/m04kA/SMC-SmartScheduler/pkg/ptr"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*domain.Task), args.Error(1)
}

type mockDeadlineRepo struct {
	mock.Mock
}

func (m *mockDeadlineRepo) List(ctx context.Context, filter domain.DeadlineFilter) ([]*domain.Deadline, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*domain.Deadline), args.Error(1)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

var (
	now  = time.Date(2025, 5, 5, 12, 0, 0, 0, time.UTC)
	day  = types.DateOf(2025, time.May, 5)
	next = day.AddDays(1)
)

func tod(h, m int) *types.TimeOfDay {
	v := types.MustTimeOfDay(h, m)
	return &v
}

func newService(tr *mockTaskRepo, dr *mockDeadlineRepo) *Service {
	return NewService(tr, dr, time.UTC, logger.Nop()).WithTimeProvider(fixedTime{now: now})
}

func TestService_Feed_MergesAndSorts(t *testing.T) {
	tr := &mockTaskRepo{}
	dr := &mockDeadlineRepo{}
	svc := newService(tr, dr)
	ctx := context.Background()

	tr.On("List", ctx, mock.AnythingOfType("domain.TaskFilter")).Return([]*domain.Task{
		{ID: 1, Title: "afternoon", Status: domain.TaskStatusScheduled, ScheduledDate: &day, StartTime: tod(14, 0), EndTime: tod(15, 0)},
		{ID: 2, Title: "holiday", Status: domain.TaskStatusScheduled, ScheduledDate: &next, AllDay: true},
		{ID: 3, Title: "morning", Status: domain.TaskStatusScheduled, ScheduledDate: &day, StartTime: tod(9, 0), EndTime: tod(10, 0)},
	}, nil)
	dr.On("List", ctx, mock.AnythingOfType("domain.DeadlineFilter")).Return([]*domain.Deadline{
		{ID: 10, Title: "report due", DueDate: time.Date(2025, 5, 5, 11, 0, 0, 0, time.UTC)},
		{ID: 11, Title: "same time as task", DueDate: time.Date(2025, 5, 5, 14, 0, 0, 0, time.UTC)},
	}, nil)

	resp, err := svc.Feed(ctx, &models.FeedRequest{StartDate: day, EndDate: next})
	require.NoError(t, err)
	require.Equal(t, 5, resp.Total)

	got := make([]string, 0, len(resp.Items))
	for _, it := range resp.Items {
		got = append(got, it.Title)
	}
	assert.Equal(t, []string{"morning", "report due", "afternoon", "same time as task", "holiday"}, got)
	assert.True(t, resp.Items[1].IsOverdue)
	assert.Equal(t, models.ItemKindDeadline, resp.Items[1].Kind)

	deadlineFilter := dr.Calls[0].Arguments.Get(1).(domain.DeadlineFilter)
	assert.Equal(t, time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC), *deadlineFilter.From)
	assert.Equal(t, time.Date(2025, 5, 6, 23, 59, 59, 999999999, time.UTC), *deadlineFilter.To)

	taskFilter := tr.Calls[0].Arguments.Get(1).(domain.TaskFilter)
	assert.Equal(t, "2025-05-05", taskFilter.DateFrom.String())
	assert.Equal(t, "2025-05-06", taskFilter.DateTo.String())
}

func TestService_Feed_TypeFilter(t *testing.T) {
	tr := &mockTaskRepo{}
	dr := &mockDeadlineRepo{}
	svc := newService(tr, dr)
	ctx := context.Background()

	dr.On("List", ctx, mock.AnythingOfType("domain.DeadlineFilter")).Return([]*domain.Deadline{{ID: 1, DueDate: now}}, nil)

	resp, err := svc.Feed(ctx, &models.FeedRequest{StartDate: day, EndDate: day, Type: ptr.Ptr("Deadline")})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	tr.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestService_Feed_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		req  *models.FeedRequest
	}{
		{name: "missing dates", req: &models.FeedRequest{}},
		{name: "inverted range", req: &models.FeedRequest{StartDate: next, EndDate: day}},
		{name: "too long", req: &models.FeedRequest{StartDate: day, EndDate: day.AddDays(maxFeedDays + 1)}},
		{name: "bad type", req: &models.FeedRequest{StartDate: day, EndDate: day, Type: ptr.Ptr("event")}},
		{name: "bad status", req: &models.FeedRequest{StartDate: day, EndDate: day, Status: ptr.Ptr("done")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(&mockTaskRepo{}, &mockDeadlineRepo{})
			_, err := svc.Feed(ctx, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_Feed_RepositoryError(t *testing.T) {
	tr := &mockTaskRepo{}
	svc := newService(tr, &mockDeadlineRepo{})
	ctx := context.Background()

	tr.On("List", ctx, mock.AnythingOfType("domain.TaskFilter")).Return([]*domain.Task(nil), errors.New("db down"))

	_, err := svc.Feed(ctx, &models.FeedRequest{StartDate: day, EndDate: day})
	assert.ErrorIs(t, err, ErrInternal)
}
