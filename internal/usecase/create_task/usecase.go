package create_task

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	projectRepo "github.com/m04kA/SMC-SmartScheduler/internal/infra/storage/project"
)

// UseCase use case для создания задачи
type UseCase struct {
	taskRepo       TaskRepository
	projectRepo    ProjectRepository
	conflictFinder ConflictFinder
	txManager      TransactionManager
	metrics        Metrics
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	taskRepo TaskRepository,
	projectRepo ProjectRepository,
	conflictFinder ConflictFinder,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		taskRepo:       taskRepo,
		projectRepo:    projectRepo,
		conflictFinder: conflictFinder,
		txManager:      txManager,
		metrics:        metrics,
		logger:         logger,
	}
}

// Execute создает задачу. Задача с интервалом проверяется на пересечения
// с активными задачами той же даты в сериализуемой транзакции, чтобы два
// параллельных запроса не заняли одно время.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Task, error) {
	uc.logger.Info("CreateTask: title=%q", req.Title)

	// 1. Валидация и значения по умолчанию
	task, err := buildTask(req)
	if err != nil {
		uc.logger.Warn("CreateTask: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Task

	// 2. Проверка пересечений и вставка в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if task.ProjectID != nil {
			if _, err := uc.projectRepo.GetByID(txCtx, *task.ProjectID); err != nil {
				if errors.Is(err, projectRepo.ErrProjectNotFound) {
					uc.logger.Warn("CreateTask: project id=%d not found", *task.ProjectID)
					return ErrProjectNotFound
				}
				uc.logger.Error("CreateTask: failed to get project id=%d: %v", *task.ProjectID, err)
				return fmt.Errorf("%w: failed to get project: %v", ErrInternal, err)
			}
		}

		if interval, ok := task.Interval(); ok {
			conflicts, err := uc.conflictFinder.Find(txCtx, *task.ScheduledDate, interval, nil)
			if err != nil {
				uc.logger.Error("CreateTask: failed to check conflicts: %v", err)
				return fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
			}
			if len(conflicts) > 0 {
				uc.metrics.IncConflict("create")
				uc.logger.Warn("CreateTask: %s on %s overlaps %d task(s)", interval, task.ScheduledDate, len(conflicts))
				return &domain.ConflictError{Conflicts: conflicts}
			}
		}

		created, err := uc.taskRepo.Create(txCtx, task)
		if err != nil {
			uc.logger.Error("CreateTask: failed to create task: %v", err)
			return fmt.Errorf("%w: failed to create task: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateTask: successfully created task id=%d status=%s", result.ID, result.Status)
	return result, nil
}
