package tasks

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	projectRepo "github.com/m04kA/SMC-SmartScheduler/internal/infra/storage/project"
	taskRepo "github.com/m04kA/SMC-SmartScheduler/internal/infra/storage/task"
	"github.com/m04kA/SMC-SmartScheduler/internal/service/tasks/models"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// Service сервис для работы с задачами
type Service struct {
	taskRepo     TaskRepository
	projectRepo  ProjectRepository
	conflicts    ConflictFinder
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса задач.
// location определяет границы дня для "сегодня" и "эта неделя".
func NewService(
	taskRepo TaskRepository,
	projectRepo ProjectRepository,
	conflicts ConflictFinder,
	txManager TransactionManager,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		taskRepo:     taskRepo,
		projectRepo:  projectRepo,
		conflicts:    conflicts,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает задачу по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.TaskResponse, error) {
	task, err := s.getTask(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainTask(task, s.timeProvider.Now()), nil
}

// List получает задачи по фильтрам
func (s *Service) List(ctx context.Context, req *models.ListTasksRequest) (*models.TaskListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultListLimit
	}
	if filter.Limit > domain.MaxListLimit {
		filter.Limit = domain.MaxListLimit
	}
	if filter.Offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative", ErrInvalidInput)
	}

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTaskList(tasks, s.timeProvider.Now()), nil
}

// Today получает задачи, запланированные на сегодня
func (s *Service) Today(ctx context.Context) (*models.TaskListResponse, error) {
	today := s.today()
	return s.byRange(ctx, "Today", today, today)
}

// ThisWeek получает задачи текущей недели (понедельник - воскресенье)
func (s *Service) ThisWeek(ctx context.Context) (*models.TaskListResponse, error) {
	start := s.today().StartOfWeek()
	return s.byRange(ctx, "ThisWeek", start, start.AddDays(6))
}

// Calendar получает задачи месяца, сгруппированные по дате
func (s *Service) Calendar(ctx context.Context, year, month int) (*models.CalendarResponse, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be in 1..12", ErrInvalidInput)
	}
	if year < 1970 || year > 9999 {
		return nil, fmt.Errorf("%w: year is out of range", ErrInvalidInput)
	}

	start := types.DateOf(year, time.Month(month), 1)
	tasks, err := s.taskRepo.GetByDateRange(ctx, start, start.EndOfMonth())
	if err != nil {
		s.logger.Error("Calendar: repository error for %d-%02d: %v", year, month, err)
		return nil, fmt.Errorf("%w: Calendar - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	resp := &models.CalendarResponse{
		Year:  year,
		Month: month,
		Days:  make(map[string][]models.TaskResponse),
	}
	for _, t := range tasks {
		if t.ScheduledDate == nil {
			continue
		}
		key := t.ScheduledDate.String()
		resp.Days[key] = append(resp.Days[key], *models.FromDomainTask(t, now))
	}

	return resp, nil
}

// UpdateStatus меняет статус задачи.
// Для completed выставляются completed_at и прогресс 100%, прогресс проекта пересчитывается.
// Возврат отмененной задачи с интервалом в работу проверяется на пересечения (domain.ConflictError).
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.TaskResponse, error) {
	status, err := models.ToDomainTaskStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: task id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.setStatus(ctx, "UpdateStatus", id, status)
}

// Complete отмечает задачу выполненной
func (s *Service) Complete(ctx context.Context, id int64) (*models.TaskResponse, error) {
	return s.setStatus(ctx, "Complete", id, domain.TaskStatusCompleted)
}

// Start переводит задачу в работу
func (s *Service) Start(ctx context.Context, id int64) (*models.TaskResponse, error) {
	return s.setStatus(ctx, "Start", id, domain.TaskStatusInProgress)
}

// Pause возвращает задачу в ожидание
func (s *Service) Pause(ctx context.Context, id int64) (*models.TaskResponse, error) {
	return s.setStatus(ctx, "Pause", id, domain.TaskStatusPending)
}

// UpdateProgress обновляет прогресс задачи, значение ограничивается 0..100.
// Прогресс 100% завершает задачу.
func (s *Service) UpdateProgress(ctx context.Context, id int64, req *models.UpdateProgressRequest) (*models.TaskResponse, error) {
	if math.IsNaN(req.Progress) || math.IsInf(req.Progress, 0) {
		return nil, fmt.Errorf("%w: progress must be a number", ErrInvalidInput)
	}
	progress := domain.ClampProgress(req.Progress)

	var result *domain.Task
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		task, err := s.getTask(txCtx, "UpdateProgress", id)
		if err != nil {
			return err
		}

		if err := s.taskRepo.UpdateProgress(txCtx, id, progress); err != nil {
			return s.mapRepoError("UpdateProgress", id, err)
		}

		if progress >= domain.MaxProgress && task.Status != domain.TaskStatusCompleted {
			if err := s.taskRepo.UpdateStatus(txCtx, id, domain.TaskStatusCompleted, s.timeProvider.Now()); err != nil {
				return s.mapRepoError("UpdateProgress", id, err)
			}
			if err := s.recalculateProject(txCtx, task.ProjectID); err != nil {
				return err
			}
		}

		result, err = s.getTask(txCtx, "UpdateProgress", id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateProgress: task id=%d progress=%.1f status=%s", id, result.ProgressPercentage, result.Status)
	return models.FromDomainTask(result, s.timeProvider.Now()), nil
}

// Delete удаляет задачу
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		task, err := s.getTask(txCtx, "Delete", id)
		if err != nil {
			return err
		}

		if err := s.taskRepo.Delete(txCtx, id); err != nil {
			return s.mapRepoError("Delete", id, err)
		}

		return s.recalculateProject(txCtx, task.ProjectID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Delete: task id=%d deleted", id)
	return nil
}

// Stats собирает статистику по задачам
func (s *Service) Stats(ctx context.Context) (*models.StatsResponse, error) {
	stats, err := s.collectStats(ctx)
	if err != nil {
		s.logger.Error("Stats: %v", err)
		return nil, fmt.Errorf("%w: Stats - %v", ErrInternal, err)
	}
	return models.FromDomainStats(stats), nil
}

// DomainStats возвращает статистику в domain виде (для фоновых задач и дашборда)
func (s *Service) DomainStats(ctx context.Context) (*domain.TaskStats, error) {
	stats, err := s.collectStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: DomainStats - %v", ErrInternal, err)
	}
	return stats, nil
}

func (s *Service) collectStats(ctx context.Context) (*domain.TaskStats, error) {
	now := s.timeProvider.Now()

	byStatus, err := s.taskRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	highPriority, err := s.taskRepo.CountHighPriority(ctx)
	if err != nil {
		return nil, err
	}
	todayTasks, err := s.taskRepo.CountForDate(ctx, s.today())
	if err != nil {
		return nil, err
	}
	overdue, err := s.taskRepo.CountOverdue(ctx, now)
	if err != nil {
		return nil, err
	}

	stats := &domain.TaskStats{
		Pending:      byStatus[domain.TaskStatusPending],
		InProgress:   byStatus[domain.TaskStatusInProgress],
		Completed:    byStatus[domain.TaskStatusCompleted],
		Scheduled:    byStatus[domain.TaskStatusScheduled],
		Cancelled:    byStatus[domain.TaskStatusCancelled],
		HighPriority: highPriority,
		TodayTasks:   todayTasks,
		Overdue:      overdue,
	}
	for _, count := range byStatus {
		stats.Total += count
	}
	if stats.Total > 0 {
		rate := float64(stats.Completed) / float64(stats.Total) * 100
		stats.CompletionRate = math.Round(rate*10) / 10
	}

	return stats, nil
}

func (s *Service) setStatus(ctx context.Context, op string, id int64, status domain.TaskStatus) (*models.TaskResponse, error) {
	var result *domain.Task
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := s.getTask(txCtx, op, id)
		if err != nil {
			return err
		}

		// Отмененная задача не занимала время, при возврате интервал проверяется заново
		if !current.IsActive() && status != domain.TaskStatusCancelled {
			if err := s.checkConflicts(txCtx, op, current); err != nil {
				return err
			}
		}

		if err := s.taskRepo.UpdateStatus(txCtx, id, status, s.timeProvider.Now()); err != nil {
			return s.mapRepoError(op, id, err)
		}

		task, err := s.getTask(txCtx, op, id)
		if err != nil {
			return err
		}
		if err := s.recalculateProject(txCtx, task.ProjectID); err != nil {
			return err
		}

		result = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: task id=%d status=%s", op, id, status)
	return models.FromDomainTask(result, s.timeProvider.Now()), nil
}

func (s *Service) checkConflicts(ctx context.Context, op string, task *domain.Task) error {
	interval, ok := task.Interval()
	if !ok {
		return nil
	}

	conflicts, err := s.conflicts.Find(ctx, *task.ScheduledDate, interval, &task.ID)
	if err != nil {
		s.logger.Error("%s: failed to check conflicts for task id=%d: %v", op, task.ID, err)
		return fmt.Errorf("%w: %s - failed to check conflicts: %v", ErrInternal, op, err)
	}
	if len(conflicts) > 0 {
		s.metrics.IncConflict("status")
		s.logger.Warn("%s: task id=%d %s on %s overlaps %d task(s)",
			op, task.ID, interval, task.ScheduledDate, len(conflicts))
		return &domain.ConflictError{Conflicts: conflicts}
	}
	return nil
}

// RefreshProject пересчитывает прогресс проекта после изменения его задач.
// Вызывается use case-ами внутри их транзакций.
func (s *Service) RefreshProject(ctx context.Context, projectID int64) error {
	return s.recalculateProject(ctx, &projectID)
}

// recalculateProject пересчитывает прогресс проекта по доле выполненных задач
func (s *Service) recalculateProject(ctx context.Context, projectID *int64) error {
	if projectID == nil {
		return nil
	}

	project, err := s.projectRepo.GetByID(ctx, *projectID)
	if err != nil {
		if errors.Is(err, projectRepo.ErrProjectNotFound) {
			s.logger.Warn("recalculateProject: project id=%d not found", *projectID)
			return nil
		}
		return fmt.Errorf("%w: recalculateProject - get project: %v", ErrInternal, err)
	}

	tasks, err := s.taskRepo.ListByProject(ctx, *projectID)
	if err != nil {
		return fmt.Errorf("%w: recalculateProject - list tasks: %v", ErrInternal, err)
	}

	progress := domain.ProjectProgress(tasks)
	var completedAt *time.Time
	if progress >= domain.MaxProgress && project.Status != domain.ProjectStatusCompleted {
		now := s.timeProvider.Now()
		completedAt = &now
	}

	if err := s.projectRepo.UpdateProgress(ctx, *projectID, progress, completedAt); err != nil {
		return fmt.Errorf("%w: recalculateProject - update progress: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) byRange(ctx context.Context, op string, from, to types.Date) (*models.TaskListResponse, error) {
	tasks, err := s.taskRepo.GetByDateRange(ctx, from, to)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return models.FromDomainTaskList(tasks, s.timeProvider.Now()), nil
}

func (s *Service) getTask(ctx context.Context, op string, id int64) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(op, id, err)
	}
	return task, nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, taskRepo.ErrTaskNotFound) {
		s.logger.Warn("%s: task id=%d not found", op, id)
		return ErrTaskNotFound
	}
	s.logger.Error("%s: repository error for task id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func (s *Service) today() types.Date {
	return types.NewDate(s.timeProvider.Now().In(s.location))
}
