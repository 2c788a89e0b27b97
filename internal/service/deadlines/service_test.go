package deadlines

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	deadlineRepo "github.com/m04kA/SMC-SmartScheduler/internal/infra/storage/deadline"
	"github.com/m04kA/SMC-SmartScheduler/internal/service/deadlines/models"
	"github.com/m04kA/SMC-SmartScheduler/pkg/logger"
	"github.com/m04kA/SMC-SmartScheduler/pkg/ptr"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, d *domain.Deadline) (*domain.Deadline, error) {
	args := m.Called(ctx, d)
	if fn, ok := args.Get(0).(func(*domain.Deadline) *domain.Deadline); ok {
		return fn(d), args.Error(1)
	}
	if r := args.Get(0); r != nil {
		return r.(*domain.Deadline), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Deadline, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*domain.Deadline), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, filter domain.DeadlineFilter) ([]*domain.Deadline, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*domain.Deadline), args.Error(1)
}

func (m *mockRepo) ListRecurring(ctx context.Context) ([]*domain.Deadline, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.Deadline), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, d *domain.Deadline) (*domain.Deadline, error) {
	args := m.Called(ctx, d)
	if fn, ok := args.Get(0).(func(*domain.Deadline) *domain.Deadline); ok {
		return fn(d), args.Error(1)
	}
	if r := args.Get(0); r != nil {
		return r.(*domain.Deadline), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) MarkComplete(ctx context.Context, id int64, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *mockRepo) Extend(ctx context.Context, id int64, dueDate time.Time) error {
	return m.Called(ctx, id, dueDate).Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

var now = time.Date(2025, 5, 5, 12, 0, 0, 0, time.UTC)

func newService(repo *mockRepo) *Service {
	return NewService(repo, logger.Nop()).WithTimeProvider(fixedTime{now: now})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	due := now.Add(48 * time.Hour)

	tests := []struct {
		name    string
		req     *models.CreateDeadlineRequest
		wantErr error
		check   func(t *testing.T, d *domain.Deadline)
	}{
		{
			name: "defaults applied",
			req:  &models.CreateDeadlineRequest{Title: "  Tax return ", DueDate: due},
			check: func(t *testing.T, d *domain.Deadline) {
				assert.Equal(t, "Tax return", d.Title)
				assert.Equal(t, domain.DefaultDeadlineColor, d.Color)
				assert.Equal(t, domain.DeadlineTypeGeneral, d.Type)
				assert.Equal(t, domain.RecurrenceNone, d.Recurrence)
			},
		},
		{
			name: "explicit values kept",
			req: &models.CreateDeadlineRequest{
				Title: "Release", DueDate: due, Type: "project", Color: ptr.Ptr("#10B981"), Recurrence: "weekly",
			},
			check: func(t *testing.T, d *domain.Deadline) {
				assert.Equal(t, "#10B981", d.Color)
				assert.Equal(t, domain.DeadlineTypeProject, d.Type)
				assert.Equal(t, domain.RecurrenceWeekly, d.Recurrence)
			},
		},
		{name: "empty title", req: &models.CreateDeadlineRequest{Title: " ", DueDate: due}, wantErr: ErrInvalidInput},
		{name: "missing due date", req: &models.CreateDeadlineRequest{Title: "x"}, wantErr: ErrInvalidInput},
		{name: "bad color", req: &models.CreateDeadlineRequest{Title: "x", DueDate: due, Color: ptr.Ptr("red")}, wantErr: ErrInvalidInput},
		{name: "bad type", req: &models.CreateDeadlineRequest{Title: "x", DueDate: due, Type: "meeting"}, wantErr: ErrInvalidInput},
		{name: "bad recurrence", req: &models.CreateDeadlineRequest{Title: "x", DueDate: due, Recurrence: "yearly"}, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepo{}
			svc := newService(repo)

			if tt.wantErr == nil {
				repo.On("Create", ctx, mock.AnythingOfType("*domain.Deadline")).
					Return(func(d *domain.Deadline) *domain.Deadline {
						d.ID = 7
						return d
					}, nil)
			}

			resp, err := svc.Create(ctx, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(7), resp.ID)
			created := repo.Calls[0].Arguments.Get(1).(*domain.Deadline)
			tt.check(t, created)
		})
	}
}

func TestService_GetByID_NotFound(t *testing.T) {
	repo := &mockRepo{}
	svc := newService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(3)).Return(nil, deadlineRepo.ErrDeadlineNotFound)

	_, err := svc.GetByID(ctx, 3)
	assert.ErrorIs(t, err, ErrDeadlineNotFound)
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("passes filter", func(t *testing.T) {
		repo := &mockRepo{}
		svc := newService(repo)

		typ := domain.DeadlineTypeTask
		repo.On("List", ctx, domain.DeadlineFilter{Type: &typ, Completed: ptr.Ptr(false)}).
			Return([]*domain.Deadline{{ID: 1, Title: "a", DueDate: now.Add(-time.Hour)}}, nil)

		resp, err := svc.List(ctx, &models.ListDeadlinesRequest{Type: ptr.Ptr("task"), Completed: ptr.Ptr(false)})
		require.NoError(t, err)
		require.Equal(t, 1, resp.Total)
		assert.True(t, resp.Deadlines[0].IsOverdue)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		svc := newService(&mockRepo{})
		_, err := svc.List(ctx, &models.ListDeadlinesRequest{Type: ptr.Ptr("nope")})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		svc := newService(&mockRepo{})
		from := now
		to := now.Add(-time.Hour)
		_, err := svc.List(ctx, &models.ListDeadlinesRequest{From: &from, To: &to})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Update(t *testing.T) {
	repo := &mockRepo{}
	svc := newService(repo)
	ctx := context.Background()

	existing := &domain.Deadline{
		ID: 1, Title: "old", Type: domain.DeadlineTypeGeneral, DueDate: now,
		Color: domain.DefaultDeadlineColor, Recurrence: domain.RecurrenceNone,
	}
	repo.On("GetByID", ctx, int64(1)).Return(existing, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*domain.Deadline")).
		Return(func(d *domain.Deadline) *domain.Deadline { return d }, nil)

	resp, err := svc.Update(ctx, 1, &models.UpdateDeadlineRequest{Title: ptr.Ptr("new"), Completed: ptr.Ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, "new", resp.Title)
	assert.True(t, resp.Completed)
	require.NotNil(t, resp.CompletedAt)
	assert.Equal(t, now, *resp.CompletedAt)

	_, err = svc.Update(ctx, 1, &models.UpdateDeadlineRequest{Color: ptr.Ptr("#12")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_CompleteAndExtend(t *testing.T) {
	repo := &mockRepo{}
	svc := newService(repo)
	ctx := context.Background()
	later := now.Add(72 * time.Hour)

	repo.On("MarkComplete", ctx, int64(1), now).Return(nil)
	repo.On("MarkComplete", ctx, int64(2), now).Return(deadlineRepo.ErrDeadlineNotFound)
	repo.On("Extend", ctx, int64(1), later).Return(nil)
	repo.On("GetByID", ctx, int64(1)).Return(&domain.Deadline{ID: 1, Title: "a", DueDate: later}, nil)

	_, err := svc.Complete(ctx, 1)
	require.NoError(t, err)

	_, err = svc.Complete(ctx, 2)
	assert.ErrorIs(t, err, ErrDeadlineNotFound)

	resp, err := svc.Extend(ctx, 1, &models.ExtendDeadlineRequest{NewDueDate: later})
	require.NoError(t, err)
	assert.Equal(t, later, resp.DueDate)

	_, err = svc.Extend(ctx, 1, &models.ExtendDeadlineRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Delete(t *testing.T) {
	repo := &mockRepo{}
	svc := newService(repo)
	ctx := context.Background()

	repo.On("Delete", ctx, int64(1)).Return(nil)
	repo.On("Delete", ctx, int64(2)).Return(deadlineRepo.ErrDeadlineNotFound)

	assert.NoError(t, svc.Delete(ctx, 1))
	assert.ErrorIs(t, svc.Delete(ctx, 2), ErrDeadlineNotFound)
}

func TestService_Analytics(t *testing.T) {
	repo := &mockRepo{}
	svc := newService(repo)
	ctx := context.Background()

	repo.On("List", ctx, domain.DeadlineFilter{}).Return([]*domain.Deadline{
		{ID: 1, Type: domain.DeadlineTypeTask, DueDate: now.Add(-time.Hour)},
		{ID: 2, Type: domain.DeadlineTypeTask, DueDate: now.Add(24 * time.Hour)},
		{ID: 3, Type: domain.DeadlineTypeProject, DueDate: now.Add(30 * 24 * time.Hour)},
		{ID: 4, Type: domain.DeadlineTypeGeneral, DueDate: now.Add(-time.Hour), Completed: true},
	}, nil)

	resp, err := svc.Analytics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, 1, resp.Completed)
	assert.Equal(t, 1, resp.Overdue)
	assert.Equal(t, 1, resp.Upcoming)
	assert.Equal(t, map[string]int{"general": 1, "task": 2, "project": 1}, resp.ByType)
}
