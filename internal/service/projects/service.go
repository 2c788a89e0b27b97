package projects

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	projectRepo "github.com/m04kA/SMC-SmartScheduler/internal/infra/storage/project"
	"github.com/m04kA/SMC-SmartScheduler/internal/service/projects/models"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Service сервис для работы с проектами
type Service struct {
	projectRepo  ProjectRepository
	taskRepo     TaskRepository
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса проектов
func NewService(projectRepo ProjectRepository, taskRepo TaskRepository, location *time.Location, logger Logger) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		projectRepo:  projectRepo,
		taskRepo:     taskRepo,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Create создает проект. Дата начала по умолчанию сегодня, статус active.
func (s *Service) Create(ctx context.Context, req *models.CreateProjectRequest) (*models.ProjectResponse, error) {
	today := s.today()

	p := &domain.Project{
		Name:                strings.TrimSpace(req.Name),
		Description:         req.Description,
		Status:              domain.ProjectStatusActive,
		StartDate:           req.StartDate,
		Deadline:            req.Deadline,
		EstimatedCompletion: req.EstimatedCompletion,
		Color:               domain.DefaultProjectColor,
	}
	if req.Status != "" {
		p.Status = domain.ProjectStatus(strings.ToLower(req.Status))
	}
	if req.Color != nil {
		p.Color = *req.Color
	}
	if p.StartDate == nil {
		p.StartDate = &today
	}

	if err := validate(p); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.projectRepo.Create(ctx, p)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: project id=%d name=%q", created.ID, created.Name)
	return models.FromDomainProject(created, today), nil
}

// GetByID получает проект по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ProjectResponse, error) {
	p, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}
	return models.FromDomainProject(p, s.today()), nil
}

// List получает проекты. Завершенные и отмененные скрыты, если не запрошены явно.
func (s *Service) List(ctx context.Context, req *models.ListProjectsRequest) (*models.ProjectListResponse, error) {
	filter := domain.ProjectFilter{IncludeCompleted: req.IncludeCompleted}
	if req.Status != nil {
		status := domain.ProjectStatus(strings.ToLower(strings.TrimSpace(*req.Status)))
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: unknown project status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	projects, err := s.projectRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainProjectList(projects, s.today()), nil
}

// Upcoming получает активные проекты с дедлайном в ближайшие daysAhead дней
func (s *Service) Upcoming(ctx context.Context, daysAhead int) (*models.ProjectListResponse, error) {
	if daysAhead == 0 {
		daysAhead = domain.DefaultUpcomingDays
	}
	if daysAhead < 0 || daysAhead > domain.MaxUpcomingDays {
		return nil, fmt.Errorf("%w: daysAhead must be between 1 and %d", ErrInvalidInput, domain.MaxUpcomingDays)
	}

	today := s.today()
	projects, err := s.projectRepo.ListUpcoming(ctx, today.AddDays(daysAhead))
	if err != nil {
		s.logger.Error("Upcoming: repository error: %v", err)
		return nil, fmt.Errorf("%w: Upcoming - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainProjectList(projects, today), nil
}

// RecalculateProgress пересчитывает прогресс по доле выполненных задач.
// 100% переводит проект в completed.
func (s *Service) RecalculateProgress(ctx context.Context, id int64) (*models.ProjectResponse, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("RecalculateProgress", id, err)
	}

	tasks, err := s.taskRepo.ListByProject(ctx, id)
	if err != nil {
		s.logger.Error("RecalculateProgress: list tasks for project id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: RecalculateProgress - list tasks: %v", ErrInternal, err)
	}

	progress := domain.ProjectProgress(tasks)
	var completedAt *time.Time
	if progress >= domain.MaxProgress && project.Status != domain.ProjectStatusCompleted {
		now := s.timeProvider.Now()
		completedAt = &now
	}

	if err := s.projectRepo.UpdateProgress(ctx, id, progress, completedAt); err != nil {
		return nil, s.mapRepoError("RecalculateProgress", id, err)
	}

	s.logger.Info("RecalculateProgress: project id=%d progress=%.1f tasks=%d", id, progress, len(tasks))
	return s.GetByID(ctx, id)
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, projectRepo.ErrProjectNotFound) {
		s.logger.Warn("%s: project id=%d not found", op, id)
		return ErrProjectNotFound
	}
	s.logger.Error("%s: repository error for project id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func (s *Service) today() types.Date {
	return types.NewDate(s.timeProvider.Now().In(s.location))
}

func validate(p *domain.Project) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(p.Name) > domain.MaxTitleLength {
		return fmt.Errorf("%w: name is longer than %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}
	if !p.Status.IsValid() {
		return fmt.Errorf("%w: unknown project status %q", ErrInvalidInput, p.Status)
	}
	if !colorPattern.MatchString(p.Color) {
		return fmt.Errorf("%w: color must look like #RRGGBB", ErrInvalidInput)
	}
	if p.StartDate != nil && p.Deadline != nil && p.Deadline.Before(*p.StartDate) {
		return fmt.Errorf("%w: deadline is before start date", ErrInvalidInput)
	}
	return nil
}
