package schedule_task

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	taskRepo "github.com/m04kA/SMC-SmartScheduler/internal/infra/storage/task"
)

// UseCase use case для переноса задачи на дату и время
type UseCase struct {
	taskRepo       TaskRepository
	conflictFinder ConflictFinder
	txManager      TransactionManager
	metrics        Metrics
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	taskRepo TaskRepository,
	conflictFinder ConflictFinder,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		taskRepo:       taskRepo,
		conflictFinder: conflictFinder,
		txManager:      txManager,
		metrics:        metrics,
		logger:         logger,
	}
}

// Execute планирует задачу. Задача с интервалом проверяется на пересечения
// без учета самой себя.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Task, error) {
	uc.logger.Info("ScheduleTask: task id=%d, date=%s, allDay=%t", req.TaskID, req.Date, req.AllDay)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ScheduleTask: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Task

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		task, err := uc.taskRepo.GetByID(txCtx, req.TaskID)
		if err != nil {
			if errors.Is(err, taskRepo.ErrTaskNotFound) {
				uc.logger.Warn("ScheduleTask: task id=%d not found", req.TaskID)
				return ErrTaskNotFound
			}
			uc.logger.Error("ScheduleTask: failed to get task id=%d: %v", req.TaskID, err)
			return fmt.Errorf("%w: failed to get task: %v", ErrInternal, err)
		}

		if !task.Status.IsOpen() {
			uc.logger.Warn("ScheduleTask: task id=%d has status %s", task.ID, task.Status)
			return fmt.Errorf("%w: status %s", ErrTaskClosed, task.Status)
		}

		if req.AllDay {
			applySchedule(task, req.Date, nil)
		} else {
			interval, err := resolveInterval(task, req)
			if err != nil {
				return err
			}

			conflicts, err := uc.conflictFinder.Find(txCtx, req.Date, interval, &task.ID)
			if err != nil {
				uc.logger.Error("ScheduleTask: failed to check conflicts: %v", err)
				return fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
			}
			if len(conflicts) > 0 {
				uc.metrics.IncConflict("schedule")
				uc.logger.Warn("ScheduleTask: task id=%d %s on %s overlaps %d task(s)",
					task.ID, interval, req.Date, len(conflicts))
				return &domain.ConflictError{Conflicts: conflicts}
			}

			applySchedule(task, req.Date, &interval)
		}

		updated, err := uc.taskRepo.Update(txCtx, task)
		if err != nil {
			if errors.Is(err, taskRepo.ErrTaskNotFound) {
				return ErrTaskNotFound
			}
			uc.logger.Error("ScheduleTask: failed to update task id=%d: %v", task.ID, err)
			return fmt.Errorf("%w: failed to update task: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ScheduleTask: task id=%d scheduled on %s %s", result.ID, req.Date, result.TimeSlotLabel())
	return result, nil
}
