package deadlines

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	deadlineRepo "github.com/m04kA/SMC-SmartScheduler/internal/infra/storage/deadline"
	"github.com/m04kA/SMC-SmartScheduler/internal/service/deadlines/models"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Service сервис для работы с дедлайнами
type Service struct {
	repo         DeadlineRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса дедлайнов
func NewService(repo DeadlineRepository, logger Logger) *Service {
	return &Service{
		repo:         repo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Create создает дедлайн. Цвет по умолчанию #EF4444, тип general, повторение none.
func (s *Service) Create(ctx context.Context, req *models.CreateDeadlineRequest) (*models.DeadlineResponse, error) {
	d := &domain.Deadline{
		Title:             strings.TrimSpace(req.Title),
		Description:       req.Description,
		Type:              domain.DeadlineTypeGeneral,
		DueDate:           req.DueDate,
		Color:             domain.DefaultDeadlineColor,
		TaskID:            req.TaskID,
		ProjectID:         req.ProjectID,
		Recurrence:        domain.RecurrenceNone,
		RecurrenceEndDate: req.RecurrenceEndDate,
	}
	if req.Type != "" {
		d.Type = domain.DeadlineType(req.Type)
	}
	if req.Recurrence != "" {
		d.Recurrence = domain.Recurrence(req.Recurrence)
	}
	if req.Color != nil {
		d.Color = *req.Color
	}

	if err := validate(d); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.repo.Create(ctx, d)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: deadline id=%d due=%s", created.ID, created.DueDate.Format(time.RFC3339))
	return models.FromDomainDeadline(created, s.timeProvider.Now()), nil
}

// GetByID получает дедлайн по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.DeadlineResponse, error) {
	d, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainDeadline(d, s.timeProvider.Now()), nil
}

// List получает дедлайны по фильтрам
func (s *Service) List(ctx context.Context, req *models.ListDeadlinesRequest) (*models.DeadlineListResponse, error) {
	filter := domain.DeadlineFilter{
		From:      req.From,
		To:        req.To,
		Completed: req.Completed,
		ProjectID: req.ProjectID,
	}
	if req.Type != nil {
		t := domain.DeadlineType(*req.Type)
		if !t.IsValid() {
			return nil, fmt.Errorf("%w: unknown deadline type %q", ErrInvalidInput, *req.Type)
		}
		filter.Type = &t
	}
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	deadlines, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDeadlineList(deadlines, s.timeProvider.Now()), nil
}

// Recurring получает дедлайны с повторением
func (s *Service) Recurring(ctx context.Context) (*models.DeadlineListResponse, error) {
	deadlines, err := s.repo.ListRecurring(ctx)
	if err != nil {
		s.logger.Error("Recurring: repository error: %v", err)
		return nil, fmt.Errorf("%w: Recurring - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainDeadlineList(deadlines, s.timeProvider.Now()), nil
}

// Update обновляет переданные поля дедлайна
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateDeadlineRequest) (*models.DeadlineResponse, error) {
	d, err := s.get(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		d.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		d.Description = req.Description
	}
	if req.Type != nil {
		d.Type = domain.DeadlineType(*req.Type)
	}
	if req.DueDate != nil {
		d.DueDate = *req.DueDate
	}
	if req.Color != nil {
		d.Color = *req.Color
	}
	if req.Recurrence != nil {
		d.Recurrence = domain.Recurrence(*req.Recurrence)
	}
	if req.RecurrenceEndDate != nil {
		d.RecurrenceEndDate = req.RecurrenceEndDate
	}
	if req.Completed != nil && *req.Completed != d.Completed {
		d.Completed = *req.Completed
		if d.Completed {
			now := s.timeProvider.Now()
			d.CompletedAt = &now
		} else {
			d.CompletedAt = nil
		}
	}

	if err := validate(d); err != nil {
		s.logger.Warn("Update: deadline id=%d validation failed: %v", id, err)
		return nil, err
	}

	updated, err := s.repo.Update(ctx, d)
	if err != nil {
		return nil, s.mapRepoError("Update", id, err)
	}

	s.logger.Info("Update: deadline id=%d updated", id)
	return models.FromDomainDeadline(updated, s.timeProvider.Now()), nil
}

// Complete отмечает дедлайн выполненным
func (s *Service) Complete(ctx context.Context, id int64) (*models.DeadlineResponse, error) {
	if err := s.repo.MarkComplete(ctx, id, s.timeProvider.Now()); err != nil {
		return nil, s.mapRepoError("Complete", id, err)
	}

	s.logger.Info("Complete: deadline id=%d completed", id)
	return s.GetByID(ctx, id)
}

// Extend переносит срок дедлайна
func (s *Service) Extend(ctx context.Context, id int64, req *models.ExtendDeadlineRequest) (*models.DeadlineResponse, error) {
	if req.NewDueDate.IsZero() {
		return nil, fmt.Errorf("%w: newDueDate is required", ErrInvalidInput)
	}

	if err := s.repo.Extend(ctx, id, req.NewDueDate); err != nil {
		return nil, s.mapRepoError("Extend", id, err)
	}

	s.logger.Info("Extend: deadline id=%d moved to %s", id, req.NewDueDate.Format(time.RFC3339))
	return s.GetByID(ctx, id)
}

// Delete удаляет дедлайн
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError("Delete", id, err)
	}
	s.logger.Info("Delete: deadline id=%d deleted", id)
	return nil
}

// Analytics считает общее количество, выполненные, просроченные и ближайшие (7 дней) дедлайны
func (s *Service) Analytics(ctx context.Context) (*models.AnalyticsResponse, error) {
	deadlines, err := s.repo.List(ctx, domain.DeadlineFilter{})
	if err != nil {
		s.logger.Error("Analytics: repository error: %v", err)
		return nil, fmt.Errorf("%w: Analytics - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	window := time.Duration(domain.DefaultUpcomingDays) * 24 * time.Hour

	analytics := &domain.DeadlineAnalytics{
		Total:  len(deadlines),
		ByType: make(map[domain.DeadlineType]int),
	}
	for _, t := range domain.AllDeadlineTypes {
		analytics.ByType[t] = 0
	}
	for _, d := range deadlines {
		analytics.ByType[d.Type]++
		switch {
		case d.Completed:
			analytics.Completed++
		case d.IsOverdue(now):
			analytics.Overdue++
		case d.IsUpcoming(now, window):
			analytics.Upcoming++
		}
	}

	return models.FromDomainAnalytics(analytics), nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Deadline, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(op, id, err)
	}
	return d, nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, deadlineRepo.ErrDeadlineNotFound) {
		s.logger.Warn("%s: deadline id=%d not found", op, id)
		return ErrDeadlineNotFound
	}
	s.logger.Error("%s: repository error for deadline id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func validate(d *domain.Deadline) error {
	if d.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(d.Title) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title is longer than %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}
	if d.DueDate.IsZero() {
		return fmt.Errorf("%w: dueDate is required", ErrInvalidInput)
	}
	if !d.Type.IsValid() {
		return fmt.Errorf("%w: unknown deadline type %q", ErrInvalidInput, d.Type)
	}
	if !d.Recurrence.IsValid() {
		return fmt.Errorf("%w: unknown recurrence %q", ErrInvalidInput, d.Recurrence)
	}
	if !colorPattern.MatchString(d.Color) {
		return fmt.Errorf("%w: color must look like #RRGGBB", ErrInvalidInput)
	}
	if d.RecurrenceEndDate != nil && d.RecurrenceEndDate.Before(d.DueDate) {
		return fmt.Errorf("%w: recurrenceEndDate is before dueDate", ErrInvalidInput)
	}
	return nil
}
