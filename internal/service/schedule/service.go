package schedule

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	"github.com/m04kA/SMC-SmartScheduler/internal/service/schedule/models"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// maxFeedDays ограничивает ширину ленты
const maxFeedDays = 92

// Service собирает ленту расписания из задач и дедлайнов
type Service struct {
	taskRepo     TaskRepository
	deadlineRepo DeadlineRepository
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса ленты
func NewService(taskRepo TaskRepository, deadlineRepo DeadlineRepository, location *time.Location, logger Logger) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		taskRepo:     taskRepo,
		deadlineRepo: deadlineRepo,
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

// Feed возвращает задачи и дедлайны за период, упорядоченные по времени
func (s *Service) Feed(ctx context.Context, req *models.FeedRequest) (*models.FeedResponse, error) {
	kind, err := s.validate(req)
	if err != nil {
		s.logger.Warn("Feed: validation failed: %v", err)
		return nil, err
	}

	now := s.timeProvider.Now()
	items := make([]models.FeedItem, 0)

	if kind == "" || kind == models.ItemKindTask {
		tasks, err := s.loadTasks(ctx, req)
		if err != nil {
			return nil, err
		}
		for _, t := range tasks {
			items = append(items, s.taskItem(t, now))
		}
	}

	if kind == "" || kind == models.ItemKindDeadline {
		deadlines, err := s.loadDeadlines(ctx, req)
		if err != nil {
			return nil, err
		}
		for _, d := range deadlines {
			items = append(items, s.deadlineItem(d, now))
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].At.Equal(items[j].At) {
			return items[i].At.Before(items[j].At)
		}
		if items[i].Kind != items[j].Kind {
			return items[i].Kind == models.ItemKindTask
		}
		return items[i].ID < items[j].ID
	})

	s.logger.Info("Feed: %s..%s, %d items", req.StartDate, req.EndDate, len(items))
	return &models.FeedResponse{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Items:     items,
		Total:     len(items),
	}, nil
}

func (s *Service) validate(req *models.FeedRequest) (string, error) {
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return "", fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}
	if req.EndDate.Before(req.StartDate) {
		return "", fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}
	if req.StartDate.AddDays(maxFeedDays).Before(req.EndDate) {
		return "", fmt.Errorf("%w: period is longer than %d days", ErrInvalidInput, maxFeedDays)
	}

	var kind string
	if req.Type != nil {
		kind = strings.ToLower(strings.TrimSpace(*req.Type))
		if kind != models.ItemKindTask && kind != models.ItemKindDeadline {
			return "", fmt.Errorf("%w: type must be task or deadline", ErrInvalidInput)
		}
	}
	if req.Status != nil && !domain.TaskStatus(*req.Status).IsValid() {
		return "", fmt.Errorf("%w: unknown task status %q", ErrInvalidInput, *req.Status)
	}
	return kind, nil
}

func (s *Service) loadTasks(ctx context.Context, req *models.FeedRequest) ([]*domain.Task, error) {
	filter := domain.TaskFilter{
		Category:  req.Category,
		ProjectID: req.ProjectID,
		DateFrom:  &req.StartDate,
		DateTo:    &req.EndDate,
		Limit:     domain.MaxListLimit,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		filter.Status = &status
	}

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Feed: task repository error: %v", err)
		return nil, fmt.Errorf("%w: Feed - list tasks: %v", ErrInternal, err)
	}
	return tasks, nil
}

func (s *Service) loadDeadlines(ctx context.Context, req *models.FeedRequest) ([]*domain.Deadline, error) {
	from := s.dayStart(req.StartDate)
	to := s.dayStart(req.EndDate.AddDays(1)).Add(-time.Nanosecond)

	deadlines, err := s.deadlineRepo.List(ctx, domain.DeadlineFilter{
		From:      &from,
		To:        &to,
		Completed: req.Completed,
		ProjectID: req.ProjectID,
	})
	if err != nil {
		s.logger.Error("Feed: deadline repository error: %v", err)
		return nil, fmt.Errorf("%w: Feed - list deadlines: %v", ErrInternal, err)
	}
	return deadlines, nil
}

func (s *Service) taskItem(t *domain.Task, now time.Time) models.FeedItem {
	item := models.FeedItem{
		Kind:      models.ItemKindTask,
		ID:        t.ID,
		Title:     t.Title,
		StartTime: t.StartTime,
		EndTime:   t.EndTime,
		AllDay:    t.AllDay,
		Status:    string(t.Status),
		Priority:  string(t.Priority),
		Category:  t.Category,
		ProjectID: t.ProjectID,
		Completed: t.Status == domain.TaskStatusCompleted,
		IsOverdue: t.IsOverdue(now),
	}
	if t.ScheduledDate != nil {
		item.Date = *t.ScheduledDate
		item.At = s.dayStart(*t.ScheduledDate)
		if t.StartTime != nil && !t.AllDay {
			item.At = t.StartTime.On(t.ScheduledDate.Time(), s.location)
		}
	}
	return item
}

func (s *Service) deadlineItem(d *domain.Deadline, now time.Time) models.FeedItem {
	return models.FeedItem{
		Kind:      models.ItemKindDeadline,
		ID:        d.ID,
		Title:     d.Title,
		At:        d.DueDate.In(s.location),
		Date:      types.NewDate(d.DueDate.In(s.location)),
		Color:     d.Color,
		ProjectID: d.ProjectID,
		Completed: d.Completed,
		IsOverdue: d.IsOverdue(now),
	}
}

func (s *Service) dayStart(d types.Date) time.Time {
	return types.TimeOfDay(0).On(d.Time(), s.location)
}
