package update_task

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	projectRepo "github.com/m04kA/SMC-SmartScheduler/internal/infra/storage/project"
	taskRepo "github.com/m04kA/SMC-SmartScheduler/internal/infra/storage/task"
)

// UseCase use case для частичного обновления задачи
type UseCase struct {
	taskRepo         TaskRepository
	projectRepo      ProjectRepository
	projectRefresher ProjectRefresher
	conflictFinder   ConflictFinder
	txManager        TransactionManager
	metrics          Metrics
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	taskRepo TaskRepository,
	projectRepo ProjectRepository,
	projectRefresher ProjectRefresher,
	conflictFinder ConflictFinder,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		taskRepo:         taskRepo,
		projectRepo:      projectRepo,
		projectRefresher: projectRefresher,
		conflictFinder:   conflictFinder,
		txManager:        txManager,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute обновляет задачу. Если после обновления у активной задачи есть
// интервал, он повторно проверяется на пересечения без учета самой задачи.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Task, error) {
	uc.logger.Info("UpdateTask: task id=%d", req.TaskID)

	if req.TaskID <= 0 {
		return nil, fmt.Errorf("%w: taskId must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	var result *domain.Task

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Текущее состояние задачи
		task, err := uc.taskRepo.GetByID(txCtx, req.TaskID)
		if err != nil {
			if errors.Is(err, taskRepo.ErrTaskNotFound) {
				uc.logger.Warn("UpdateTask: task id=%d not found", req.TaskID)
				return ErrTaskNotFound
			}
			uc.logger.Error("UpdateTask: failed to get task id=%d: %v", req.TaskID, err)
			return fmt.Errorf("%w: failed to get task: %v", ErrInternal, err)
		}

		oldStatus := task.Status
		oldProjectID := task.ProjectID

		// 2. Накладываем изменения
		if err := applyRequest(task, req, now); err != nil {
			uc.logger.Warn("UpdateTask: validation failed for task id=%d: %v", req.TaskID, err)
			return err
		}

		// 3. Новый проект должен существовать
		if req.ProjectID != nil && !sameID(oldProjectID, task.ProjectID) {
			if _, err := uc.projectRepo.GetByID(txCtx, *task.ProjectID); err != nil {
				if errors.Is(err, projectRepo.ErrProjectNotFound) {
					uc.logger.Warn("UpdateTask: project id=%d not found", *task.ProjectID)
					return ErrProjectNotFound
				}
				return fmt.Errorf("%w: failed to get project: %v", ErrInternal, err)
			}
		}

		// 4. Проверка пересечений
		if interval, ok := task.Interval(); ok && task.IsActive() {
			conflicts, err := uc.conflictFinder.Find(txCtx, *task.ScheduledDate, interval, &task.ID)
			if err != nil {
				uc.logger.Error("UpdateTask: failed to check conflicts: %v", err)
				return fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
			}
			if len(conflicts) > 0 {
				uc.metrics.IncConflict("update")
				uc.logger.Warn("UpdateTask: task id=%d %s on %s overlaps %d task(s)",
					task.ID, interval, task.ScheduledDate, len(conflicts))
				return &domain.ConflictError{Conflicts: conflicts}
			}
		}

		// 5. Сохраняем
		updated, err := uc.taskRepo.Update(txCtx, task)
		if err != nil {
			if errors.Is(err, taskRepo.ErrTaskNotFound) {
				return ErrTaskNotFound
			}
			uc.logger.Error("UpdateTask: failed to update task id=%d: %v", task.ID, err)
			return fmt.Errorf("%w: failed to update task: %v", ErrInternal, err)
		}

		// 6. Прогресс проектов, которых коснулось изменение
		if oldStatus != updated.Status || !sameID(oldProjectID, updated.ProjectID) {
			for _, projectID := range affectedProjects(oldProjectID, updated.ProjectID) {
				if err := uc.projectRefresher.RefreshProject(txCtx, projectID); err != nil {
					uc.logger.Error("UpdateTask: failed to refresh project id=%d: %v", projectID, err)
					return fmt.Errorf("%w: failed to refresh project: %v", ErrInternal, err)
				}
			}
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateTask: successfully updated task id=%d status=%s", result.ID, result.Status)
	return result, nil
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func affectedProjects(oldID, newID *int64) []int64 {
	ids := make([]int64, 0, 2)
	if oldID != nil {
		ids = append(ids, *oldID)
	}
	if newID != nil && !sameID(oldID, newID) {
		ids = append(ids, *newID)
	}
	return ids
}
