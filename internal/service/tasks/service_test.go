package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	"github.com/m04kA/SMC-SmartScheduler/internal/scheduler"
	taskRepo "github.com/m04kA/SMC-SmartScheduler/internal/infra/storage/task"
	"github.com/m04kA/SMC-SmartScheduler/internal/service/tasks/models"
	"github.com/m04kA/SMC-SmartScheduler/pkg/logger"
	"github.com/m04kA/SMC-SmartScheduler/pkg/ptr"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if t := args.Get(0); t != nil {
		return t.(*domain.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTaskRepo) List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *mockTaskRepo) GetByDateRange(ctx context.Context, from, to types.Date) ([]*domain.Task, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *mockTaskRepo) ListByProject(ctx context.Context, projectID int64) ([]*domain.Task, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *mockTaskRepo) UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus, at time.Time) error {
	return m.Called(ctx, id, status, at).Error(0)
}

func (m *mockTaskRepo) UpdateProgress(ctx context.Context, id int64, progress float64) error {
	return m.Called(ctx, id, progress).Error(0)
}

func (m *mockTaskRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTaskRepo) CountByStatus(ctx context.Context) (map[domain.TaskStatus]int, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[domain.TaskStatus]int), args.Error(1)
}

func (m *mockTaskRepo) CountOverdue(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

func (m *mockTaskRepo) CountHighPriority(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockTaskRepo) CountForDate(ctx context.Context, date types.Date) (int, error) {
	args := m.Called(ctx, date)
	return args.Int(0), args.Error(1)
}

type mockProjectRepo struct {
	mock.Mock
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*domain.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProjectRepo) UpdateProgress(ctx context.Context, id int64, progress float64, completedAt *time.Time) error {
	return m.Called(ctx, id, progress, completedAt).Error(0)
}

type mockConflictFinder struct {
	mock.Mock
}

func (m *mockConflictFinder) Find(ctx context.Context, date types.Date, interval scheduler.TimeInterval, excludeID *int64) ([]*domain.Task, error) {
	args := m.Called(ctx, date, interval, excludeID)
	if t := args.Get(0); t != nil {
		return t.([]*domain.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

type conflictCounter struct {
	byOperation map[string]int
}

func (c *conflictCounter) IncConflict(operation string) {
	if c.byOperation == nil {
		c.byOperation = make(map[string]int)
	}
	c.byOperation[operation]++
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

var now = time.Date(2025, 5, 5, 12, 0, 0, 0, time.UTC)

func newService(tr *mockTaskRepo, pr *mockProjectRepo) *Service {
	return newServiceWithFinder(tr, pr, &mockConflictFinder{}, &conflictCounter{})
}

func newServiceWithFinder(tr *mockTaskRepo, pr *mockProjectRepo, cf *mockConflictFinder, m *conflictCounter) *Service {
	return NewService(tr, pr, cf, passthroughTx{}, m, time.UTC, logger.Nop()).WithTimeProvider(fixedTime{now: now})
}

func TestService_GetByID(t *testing.T) {
	tr := &mockTaskRepo{}
	svc := newService(tr, &mockProjectRepo{})
	ctx := context.Background()

	tr.On("GetByID", ctx, int64(1)).Return(&domain.Task{ID: 1, Title: "a", Status: domain.TaskStatusPending}, nil)
	tr.On("GetByID", ctx, int64(2)).Return(nil, taskRepo.ErrTaskNotFound)

	resp, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "a", resp.Title)
	assert.Equal(t, []string{}, resp.Tags)

	_, err = svc.GetByID(ctx, 2)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestService_List(t *testing.T) {
	tr := &mockTaskRepo{}
	svc := newService(tr, &mockProjectRepo{})
	ctx := context.Background()

	status := domain.TaskStatusScheduled
	tr.On("List", ctx, domain.TaskFilter{Status: &status, Limit: domain.DefaultListLimit}).
		Return([]*domain.Task{{ID: 1, Status: status}}, nil)

	resp, err := svc.List(ctx, &models.ListTasksRequest{Status: ptr.Ptr("Scheduled")})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	_, err = svc.List(ctx, &models.ListTasksRequest{Status: ptr.Ptr("done")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(ctx, &models.ListTasksRequest{DateFrom: ptr.Ptr("05/05/2025")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Complete_RecalculatesProject(t *testing.T) {
	tr := &mockTaskRepo{}
	pr := &mockProjectRepo{}
	svc := newService(tr, pr)
	ctx := context.Background()

	projectID := int64(9)
	completed := &domain.Task{ID: 1, Status: domain.TaskStatusCompleted, ProjectID: &projectID}

	tr.On("UpdateStatus", ctx, int64(1), domain.TaskStatusCompleted, now).Return(nil)
	tr.On("GetByID", ctx, int64(1)).Return(completed, nil)
	pr.On("GetByID", ctx, projectID).Return(&domain.Project{ID: projectID, Status: domain.ProjectStatusActive}, nil)
	tr.On("ListByProject", ctx, projectID).Return([]*domain.Task{completed}, nil)
	pr.On("UpdateProgress", ctx, projectID, 100.0, mock.MatchedBy(func(at *time.Time) bool {
		return at != nil && at.Equal(now)
	})).Return(nil)

	resp, err := svc.Complete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)

	tr.AssertExpectations(t)
	pr.AssertExpectations(t)
}

func TestService_UpdateStatus(t *testing.T) {
	tr := &mockTaskRepo{}
	svc := newService(tr, &mockProjectRepo{})
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{Status: "done"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	tr.On("GetByID", ctx, int64(2)).Return(nil, taskRepo.ErrTaskNotFound)
	_, err = svc.UpdateStatus(ctx, 2, &models.UpdateStatusRequest{Status: "in_progress"})
	assert.ErrorIs(t, err, ErrTaskNotFound)
	tr.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_SetStatus_ReactivateCancelled(t *testing.T) {
	day := types.DateOf(2025, time.May, 5)
	slot := scheduler.TimeInterval{Start: types.MustTimeOfDay(9, 0), End: types.MustTimeOfDay(10, 0)}
	cancelled := func() *domain.Task {
		return &domain.Task{
			ID:            1,
			Status:        domain.TaskStatusCancelled,
			ScheduledDate: ptr.Ptr(day),
			StartTime:     ptr.Ptr(slot.Start),
			EndTime:       ptr.Ptr(slot.End),
		}
	}
	occupant := &domain.Task{
		ID:            2,
		Status:        domain.TaskStatusScheduled,
		ScheduledDate: ptr.Ptr(day),
		StartTime:     ptr.Ptr(types.MustTimeOfDay(9, 30)),
		EndTime:       ptr.Ptr(types.MustTimeOfDay(10, 30)),
	}

	tests := []struct {
		name   string
		call   func(svc *Service, ctx context.Context) (*models.TaskResponse, error)
		status domain.TaskStatus
	}{
		{
			name: "update status",
			call: func(svc *Service, ctx context.Context) (*models.TaskResponse, error) {
				return svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{Status: "scheduled"})
			},
			status: domain.TaskStatusScheduled,
		},
		{
			name:   "start",
			call:   func(svc *Service, ctx context.Context) (*models.TaskResponse, error) { return svc.Start(ctx, 1) },
			status: domain.TaskStatusInProgress,
		},
		{
			name:   "pause",
			call:   func(svc *Service, ctx context.Context) (*models.TaskResponse, error) { return svc.Pause(ctx, 1) },
			status: domain.TaskStatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+" into occupied slot", func(t *testing.T) {
			tr := &mockTaskRepo{}
			cf := &mockConflictFinder{}
			counter := &conflictCounter{}
			svc := newServiceWithFinder(tr, &mockProjectRepo{}, cf, counter)
			ctx := context.Background()

			tr.On("GetByID", ctx, int64(1)).Return(cancelled(), nil)
			cf.On("Find", ctx, day, slot, mock.MatchedBy(func(id *int64) bool {
				return id != nil && *id == 1
			})).Return([]*domain.Task{occupant}, nil)

			_, err := tt.call(svc, ctx)
			require.ErrorIs(t, err, domain.ErrTimeConflict)

			var conflictErr *domain.ConflictError
			require.ErrorAs(t, err, &conflictErr)
			require.Len(t, conflictErr.Conflicts, 1)
			assert.Equal(t, int64(2), conflictErr.Conflicts[0].ID)
			assert.Equal(t, 1, counter.byOperation["status"])
			tr.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})

		t.Run(tt.name+" into free slot", func(t *testing.T) {
			tr := &mockTaskRepo{}
			cf := &mockConflictFinder{}
			svc := newServiceWithFinder(tr, &mockProjectRepo{}, cf, &conflictCounter{})
			ctx := context.Background()

			reactivated := cancelled()
			reactivated.Status = tt.status

			tr.On("GetByID", ctx, int64(1)).Return(cancelled(), nil).Once()
			tr.On("GetByID", ctx, int64(1)).Return(reactivated, nil).Once()
			cf.On("Find", ctx, day, slot, mock.Anything).Return([]*domain.Task{}, nil)
			tr.On("UpdateStatus", ctx, int64(1), tt.status, now).Return(nil)

			resp, err := tt.call(svc, ctx)
			require.NoError(t, err)
			assert.Equal(t, string(tt.status), resp.Status)
			tr.AssertExpectations(t)
			cf.AssertExpectations(t)
		})
	}
}

func TestService_SetStatus_ActiveTaskSkipsConflictCheck(t *testing.T) {
	tr := &mockTaskRepo{}
	cf := &mockConflictFinder{}
	svc := newServiceWithFinder(tr, &mockProjectRepo{}, cf, &conflictCounter{})
	ctx := context.Background()

	day := types.DateOf(2025, time.May, 5)
	task := &domain.Task{
		ID:            1,
		Status:        domain.TaskStatusScheduled,
		ScheduledDate: ptr.Ptr(day),
		StartTime:     ptr.Ptr(types.MustTimeOfDay(9, 0)),
		EndTime:       ptr.Ptr(types.MustTimeOfDay(10, 0)),
	}
	tr.On("GetByID", ctx, int64(1)).Return(task, nil)
	tr.On("UpdateStatus", ctx, int64(1), domain.TaskStatusCancelled, now).Return(nil)

	_, err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	cf.AssertNotCalled(t, "Find", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_UpdateProgress(t *testing.T) {
	tests := []struct {
		name         string
		input        float64
		wantProgress float64
		autoComplete bool
	}{
		{name: "regular", input: 40, wantProgress: 40},
		{name: "clamped below", input: -5, wantProgress: 0},
		{name: "clamped above completes", input: 150, wantProgress: 100, autoComplete: true},
		{name: "exactly 100 completes", input: 100, wantProgress: 100, autoComplete: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &mockTaskRepo{}
			svc := newService(tr, &mockProjectRepo{})
			ctx := context.Background()

			tr.On("GetByID", ctx, int64(1)).Return(&domain.Task{ID: 1, Status: domain.TaskStatusInProgress}, nil)
			tr.On("UpdateProgress", ctx, int64(1), tt.wantProgress).Return(nil)
			if tt.autoComplete {
				tr.On("UpdateStatus", ctx, int64(1), domain.TaskStatusCompleted, now).Return(nil)
			}

			_, err := svc.UpdateProgress(ctx, 1, &models.UpdateProgressRequest{Progress: tt.input})
			require.NoError(t, err)

			tr.AssertExpectations(t)
			if !tt.autoComplete {
				tr.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestService_Delete(t *testing.T) {
	tr := &mockTaskRepo{}
	svc := newService(tr, &mockProjectRepo{})
	ctx := context.Background()

	tr.On("GetByID", ctx, int64(1)).Return(&domain.Task{ID: 1}, nil)
	tr.On("Delete", ctx, int64(1)).Return(nil)
	tr.On("GetByID", ctx, int64(2)).Return(nil, taskRepo.ErrTaskNotFound)

	require.NoError(t, svc.Delete(ctx, 1))
	assert.ErrorIs(t, svc.Delete(ctx, 2), ErrTaskNotFound)
	tr.AssertNotCalled(t, "Delete", ctx, int64(2))
}

func TestService_Stats(t *testing.T) {
	tr := &mockTaskRepo{}
	svc := newService(tr, &mockProjectRepo{})
	ctx := context.Background()

	tr.On("CountByStatus", ctx).Return(map[domain.TaskStatus]int{
		domain.TaskStatusPending:   1,
		domain.TaskStatusCompleted: 1,
		domain.TaskStatusScheduled: 1,
	}, nil)
	tr.On("CountHighPriority", ctx).Return(2, nil)
	tr.On("CountForDate", ctx, types.DateOf(2025, time.May, 5)).Return(1, nil)
	tr.On("CountOverdue", ctx, now).Return(1, nil)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalTasks)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 2, stats.HighPriority)
	assert.Equal(t, 1, stats.TodayTasks)
	assert.Equal(t, 1, stats.Overdue)
	assert.Equal(t, 33.3, stats.CompletionRate)
}

func TestService_Calendar(t *testing.T) {
	tr := &mockTaskRepo{}
	svc := newService(tr, &mockProjectRepo{})
	ctx := context.Background()

	may1 := types.DateOf(2025, time.May, 1)
	may31 := types.DateOf(2025, time.May, 31)
	d1 := types.DateOf(2025, time.May, 5)
	d2 := types.DateOf(2025, time.May, 20)

	tr.On("GetByDateRange", ctx, may1, may31).Return([]*domain.Task{
		{ID: 1, ScheduledDate: &d1},
		{ID: 2, ScheduledDate: &d1},
		{ID: 3, ScheduledDate: &d2},
	}, nil)

	resp, err := svc.Calendar(ctx, 2025, 5)
	require.NoError(t, err)
	assert.Len(t, resp.Days["2025-05-05"], 2)
	assert.Len(t, resp.Days["2025-05-20"], 1)

	_, err = svc.Calendar(ctx, 2025, 13)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ThisWeek(t *testing.T) {
	tr := &mockTaskRepo{}
	svc := newService(tr, &mockProjectRepo{})
	ctx := context.Background()

	// 2025-05-05 понедельник
	tr.On("GetByDateRange", ctx, types.DateOf(2025, time.May, 5), types.DateOf(2025, time.May, 11)).
		Return([]*domain.Task{}, nil)

	resp, err := svc.ThisWeek(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Total)
	tr.AssertExpectations(t)
}
