package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	notificationRepo "github.com/m04kA/SMC-SmartScheduler/internal/infra/storage/notification"
	"github.com/m04kA/SMC-SmartScheduler/internal/service/notifications/models"
)

// Service сервис для работы с уведомлениями.
// Доставкой уведомлений сервис не занимается, флаг sent выставляет внешний отправитель.
type Service struct {
	repo         NotificationRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(repo NotificationRepository, logger Logger) *Service {
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

// Create создает уведомление
func (s *Service) Create(ctx context.Context, req *models.CreateNotificationRequest) (*models.NotificationResponse, error) {
	n := &domain.Notification{
		UserID:        req.UserID,
		Type:          domain.NotificationType(strings.ToLower(strings.TrimSpace(req.Type))),
		TargetID:      req.TargetID,
		Message:       strings.TrimSpace(req.Message),
		ScheduledTime: req.ScheduledTime,
	}

	if err := validate(n); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.repo.Create(ctx, n)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: notification id=%d type=%s target=%d", created.ID, created.Type, created.TargetID)
	return models.FromDomainNotification(created), nil
}

// GetByID получает уведомление по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.NotificationResponse, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}
	return models.FromDomainNotification(n), nil
}

// List получает уведомления по фильтрам
func (s *Service) List(ctx context.Context, req *models.ListNotificationsRequest) (*models.NotificationListResponse, error) {
	if req.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}

	filter := domain.NotificationFilter{
		UserID:   req.UserID,
		Sent:     req.Sent,
		Read:     req.Read,
		Upcoming: req.Upcoming,
		Limit:    req.Limit,
	}
	if filter.Limit == 0 {
		filter.Limit = domain.DefaultListLimit
	}
	if filter.Limit > domain.MaxListLimit {
		filter.Limit = domain.MaxListLimit
	}
	if filter.Upcoming {
		filter.Now = s.timeProvider.Now()
	}

	list, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainNotificationList(list), nil
}

// MarkSent отмечает уведомление отправленным
func (s *Service) MarkSent(ctx context.Context, id int64) (*models.NotificationResponse, error) {
	if err := s.repo.MarkSent(ctx, id); err != nil {
		return nil, s.mapRepoError("MarkSent", id, err)
	}
	s.logger.Info("MarkSent: notification id=%d", id)
	return s.GetByID(ctx, id)
}

// MarkRead отмечает уведомление прочитанным
func (s *Service) MarkRead(ctx context.Context, id int64) (*models.NotificationResponse, error) {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return nil, s.mapRepoError("MarkRead", id, err)
	}
	s.logger.Info("MarkRead: notification id=%d", id)
	return s.GetByID(ctx, id)
}

// Delete удаляет уведомление
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError("Delete", id, err)
	}
	s.logger.Info("Delete: notification id=%d deleted", id)
	return nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
		s.logger.Warn("%s: notification id=%d not found", op, id)
		return ErrNotificationNotFound
	}
	s.logger.Error("%s: repository error for notification id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func validate(n *domain.Notification) error {
	if !n.Type.IsValid() {
		return fmt.Errorf("%w: type must be task or deadline", ErrInvalidInput)
	}
	if n.TargetID <= 0 {
		return fmt.Errorf("%w: targetId is required", ErrInvalidInput)
	}
	if n.Message == "" {
		return fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if len(n.Message) > domain.MaxNotificationMessage {
		return fmt.Errorf("%w: message is longer than %d characters", ErrInvalidInput, domain.MaxNotificationMessage)
	}
	if n.ScheduledTime.IsZero() {
		return fmt.Errorf("%w: scheduledTime is required", ErrInvalidInput)
	}
	return nil
}
