package check_conflicts

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	"github.com/m04kA/SMC-SmartScheduler/internal/scheduler"
	"github.com/m04kA/SMC-SmartScheduler/pkg/ptr"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// UseCase use case для проверки пересечений интервала с задачами дня
type UseCase struct {
	taskRepo TaskRepository
	metrics  Metrics
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(taskRepo TaskRepository, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		taskRepo: taskRepo,
		metrics:  metrics,
		logger:   logger,
	}
}

// Execute проверяет интервал без изменения данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckConflicts: date=%s, interval=%s-%s, exclude=%d",
		req.Date, req.StartTime, req.EndTime, ptr.Value(req.ExcludeTaskID))

	interval, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CheckConflicts: validation failed: %v", err)
		return nil, err
	}

	conflicts, err := uc.Find(ctx, req.Date, interval, req.ExcludeTaskID)
	if err != nil {
		return nil, err
	}

	if len(conflicts) > 0 {
		uc.metrics.IncConflict("check")
	}

	return &Response{
		HasConflicts: len(conflicts) > 0,
		Conflicts:    conflicts,
	}, nil
}

// Find возвращает активные задачи даты, пересекающиеся с интервалом.
// Вызывается и внутри транзакций создания/переноса задач: репозиторий берет
// исполнителя из контекста.
func (uc *UseCase) Find(ctx context.Context, date types.Date, interval scheduler.TimeInterval, excludeID *int64) ([]*domain.Task, error) {
	tasks, err := uc.taskRepo.GetScheduledForDate(ctx, date, excludeID)
	if err != nil {
		uc.logger.Error("CheckConflicts: failed to get tasks for %s: %v", date, err)
		return nil, fmt.Errorf("%w: failed to get scheduled tasks: %v", ErrInternal, err)
	}

	items, byID := toScheduledItems(tasks)

	found, err := scheduler.FindConflicts(interval, items, excludeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	conflicts := make([]*domain.Task, 0, len(found))
	for _, item := range found {
		conflicts = append(conflicts, byID[item.ID])
	}

	if len(conflicts) > 0 {
		uc.logger.Info("CheckConflicts: %s on %s overlaps %d task(s)", interval, date, len(conflicts))
	}

	return conflicts, nil
}

// toScheduledItems конвертирует задачи с интервалом во входные данные планировщика
func toScheduledItems(tasks []*domain.Task) ([]scheduler.ScheduledItem, map[int64]*domain.Task) {
	items := make([]scheduler.ScheduledItem, 0, len(tasks))
	byID := make(map[int64]*domain.Task, len(tasks))

	for _, t := range tasks {
		if !t.IsActive() {
			continue
		}
		item, ok := t.ToScheduledItem()
		if !ok {
			continue
		}
		items = append(items, item)
		byID[t.ID] = t
	}

	return items, byID
}
