package projects

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	projectRepo "github.com/m04kA/SMC-SmartScheduler/internal/infra/storage/project"
	"github.com/m04kA/SMC-SmartScheduler/internal/service/projects/models"
	"github.com/m04kA/SMC-SmartScheduler/pkg/logger"
	"github.com/m04kA/SMC-SmartScheduler/pkg/ptr"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

type mockProjectRepo struct {
	mock.Mock
}

func (m *mockProjectRepo) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	args := m.Called(ctx, p)
	if fn, ok := args.Get(0).(func(*domain.Project) *domain.Project); ok {
		return fn(p), args.Error(1)
	}
	if r := args.Get(0); r != nil {
		return r.(*domain.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*domain.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProjectRepo) List(ctx context.Context, filter domain.ProjectFilter) ([]*domain.Project, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*domain.Project), args.Error(1)
}

func (m *mockProjectRepo) ListUpcoming(ctx context.Context, cutoff types.Date) ([]*domain.Project, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]*domain.Project), args.Error(1)
}

func (m *mockProjectRepo) UpdateProgress(ctx context.Context, id int64, progress float64, completedAt *time.Time) error {
	return m.Called(ctx, id, progress, completedAt).Error(0)
}

type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) ListByProject(ctx context.Context, projectID int64) ([]*domain.Task, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]*domain.Task), args.Error(1)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

var (
	now   = time.Date(2025, 5, 5, 12, 0, 0, 0, time.UTC)
	today = types.DateOf(2025, time.May, 5)
)

func newService(pr *mockProjectRepo, tr *mockTaskRepo) *Service {
	return NewService(pr, tr, time.UTC, logger.Nop()).WithTimeProvider(fixedTime{now: now})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	deadline := today.AddDays(10)

	tests := []struct {
		name    string
		req     *models.CreateProjectRequest
		wantErr error
		check   func(t *testing.T, p *domain.Project)
	}{
		{
			name: "defaults applied",
			req:  &models.CreateProjectRequest{Name: " Website ", Deadline: &deadline},
			check: func(t *testing.T, p *domain.Project) {
				assert.Equal(t, "Website", p.Name)
				assert.Equal(t, domain.ProjectStatusActive, p.Status)
				assert.Equal(t, domain.DefaultProjectColor, p.Color)
				require.NotNil(t, p.StartDate)
				assert.Equal(t, "2025-05-05", p.StartDate.String())
			},
		},
		{
			name: "explicit status",
			req:  &models.CreateProjectRequest{Name: "Later", Status: "Planning"},
			check: func(t *testing.T, p *domain.Project) {
				assert.Equal(t, domain.ProjectStatusPlanning, p.Status)
			},
		},
		{name: "empty name", req: &models.CreateProjectRequest{Name: ""}, wantErr: ErrInvalidInput},
		{name: "unknown status", req: &models.CreateProjectRequest{Name: "x", Status: "done"}, wantErr: ErrInvalidInput},
		{name: "bad color", req: &models.CreateProjectRequest{Name: "x", Color: ptr.Ptr("blue")}, wantErr: ErrInvalidInput},
		{
			name:    "deadline before start",
			req:     &models.CreateProjectRequest{Name: "x", Deadline: ptr.Ptr(today.AddDays(-1))},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := &mockProjectRepo{}
			svc := newService(pr, &mockTaskRepo{})

			if tt.wantErr == nil {
				pr.On("Create", ctx, mock.AnythingOfType("*domain.Project")).
					Return(func(p *domain.Project) *domain.Project {
						p.ID = 3
						return p
					}, nil)
			}

			resp, err := svc.Create(ctx, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				pr.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(3), resp.ID)
			tt.check(t, pr.Calls[0].Arguments.Get(1).(*domain.Project))
		})
	}
}

func TestService_GetByID(t *testing.T) {
	pr := &mockProjectRepo{}
	svc := newService(pr, &mockTaskRepo{})
	ctx := context.Background()

	deadline := today.AddDays(-2)
	pr.On("GetByID", ctx, int64(1)).Return(&domain.Project{ID: 1, Name: "late", Status: domain.ProjectStatusActive, Deadline: &deadline}, nil)
	pr.On("GetByID", ctx, int64(2)).Return(nil, projectRepo.ErrProjectNotFound)

	resp, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, resp.IsOverdue)
	require.NotNil(t, resp.DaysUntilDeadline)
	assert.Equal(t, -2, *resp.DaysUntilDeadline)

	_, err = svc.GetByID(ctx, 2)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestService_List(t *testing.T) {
	pr := &mockProjectRepo{}
	svc := newService(pr, &mockTaskRepo{})
	ctx := context.Background()

	status := domain.ProjectStatusOnHold
	pr.On("List", ctx, domain.ProjectFilter{Status: &status}).Return([]*domain.Project{{ID: 1, Status: status}}, nil)
	pr.On("List", ctx, domain.ProjectFilter{IncludeCompleted: true}).Return([]*domain.Project{{ID: 1}, {ID: 2}}, nil)

	resp, err := svc.List(ctx, &models.ListProjectsRequest{Status: ptr.Ptr("on_hold")})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	resp, err = svc.List(ctx, &models.ListProjectsRequest{IncludeCompleted: true})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)

	_, err = svc.List(ctx, &models.ListProjectsRequest{Status: ptr.Ptr("archived")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Upcoming(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		daysAhead  int
		wantCutoff *types.Date
		wantErr    error
	}{
		{name: "default window", daysAhead: 0, wantCutoff: ptr.Ptr(today.AddDays(7))},
		{name: "custom window", daysAhead: 30, wantCutoff: ptr.Ptr(today.AddDays(30))},
		{name: "negative", daysAhead: -1, wantErr: ErrInvalidInput},
		{name: "too far", daysAhead: 366, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := &mockProjectRepo{}
			svc := newService(pr, &mockTaskRepo{})

			if tt.wantCutoff != nil {
				pr.On("ListUpcoming", ctx, *tt.wantCutoff).Return([]*domain.Project{}, nil)
			}

			_, err := svc.Upcoming(ctx, tt.daysAhead)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			pr.AssertExpectations(t)
		})
	}
}

func TestService_RecalculateProgress(t *testing.T) {
	ctx := context.Background()

	t.Run("partial progress", func(t *testing.T) {
		pr := &mockProjectRepo{}
		tr := &mockTaskRepo{}
		svc := newService(pr, tr)

		pr.On("GetByID", ctx, int64(1)).Return(&domain.Project{ID: 1, Status: domain.ProjectStatusActive}, nil)
		tr.On("ListByProject", ctx, int64(1)).Return([]*domain.Task{
			{ID: 1, Status: domain.TaskStatusCompleted},
			{ID: 2, Status: domain.TaskStatusPending},
			{ID: 3, Status: domain.TaskStatusInProgress},
			{ID: 4, Status: domain.TaskStatusCompleted},
		}, nil)
		pr.On("UpdateProgress", ctx, int64(1), 50.0, (*time.Time)(nil)).Return(nil)

		_, err := svc.RecalculateProgress(ctx, 1)
		require.NoError(t, err)
		pr.AssertExpectations(t)
	})

	t.Run("all done completes project", func(t *testing.T) {
		pr := &mockProjectRepo{}
		tr := &mockTaskRepo{}
		svc := newService(pr, tr)

		pr.On("GetByID", ctx, int64(1)).Return(&domain.Project{ID: 1, Status: domain.ProjectStatusActive}, nil)
		tr.On("ListByProject", ctx, int64(1)).Return([]*domain.Task{{ID: 1, Status: domain.TaskStatusCompleted}}, nil)
		pr.On("UpdateProgress", ctx, int64(1), 100.0, &now).Return(nil)

		_, err := svc.RecalculateProgress(ctx, 1)
		require.NoError(t, err)
		pr.AssertExpectations(t)
	})

	t.Run("no tasks", func(t *testing.T) {
		pr := &mockProjectRepo{}
		tr := &mockTaskRepo{}
		svc := newService(pr, tr)

		pr.On("GetByID", ctx, int64(1)).Return(&domain.Project{ID: 1, Status: domain.ProjectStatusActive}, nil)
		tr.On("ListByProject", ctx, int64(1)).Return([]*domain.Task{}, nil)
		pr.On("UpdateProgress", ctx, int64(1), 0.0, (*time.Time)(nil)).Return(nil)

		_, err := svc.RecalculateProgress(ctx, 1)
		require.NoError(t, err)
	})

	t.Run("missing project", func(t *testing.T) {
		pr := &mockProjectRepo{}
		svc := newService(pr, &mockTaskRepo{})

		pr.On("GetByID", ctx, int64(9)).Return(nil, projectRepo.ErrProjectNotFound)

		_, err := svc.RecalculateProgress(ctx, 9)
		assert.ErrorIs(t, err, ErrProjectNotFound)
	})
}
