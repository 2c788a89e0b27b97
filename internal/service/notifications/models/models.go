package models

import (
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
)

// CreateNotificationRequest запрос на создание уведомления
type CreateNotificationRequest struct {
	UserID        *int64    `json:"userId,omitempty"`
	Type          string    `json:"type"` // task | deadline
	TargetID      int64     `json:"targetId"`
	Message       string    `json:"message"`
	ScheduledTime time.Time `json:"scheduledTime"`
}

// ListNotificationsRequest фильтры списка уведомлений
type ListNotificationsRequest struct {
	UserID   *int64
	Sent     *bool
	Read     *bool
	Upcoming bool
	Limit    int
}

// NotificationResponse ответ с данными уведомления
type NotificationResponse struct {
	ID            int64     `json:"id"`
	UserID        *int64    `json:"userId,omitempty"`
	Type          string    `json:"type"`
	TargetID      int64     `json:"targetId"`
	Message       string    `json:"message"`
	ScheduledTime time.Time `json:"scheduledTime"`
	Sent          bool      `json:"sent"`
	Read          bool      `json:"read"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NotificationListResponse ответ со списком уведомлений
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
}

// FromDomainNotification конвертирует domain модель в DTO
func FromDomainNotification(n *domain.Notification) *NotificationResponse {
	if n == nil {
		return nil
	}
	return &NotificationResponse{
		ID:            n.ID,
		UserID:        n.UserID,
		Type:          string(n.Type),
		TargetID:      n.TargetID,
		Message:       n.Message,
		ScheduledTime: n.ScheduledTime,
		Sent:          n.Sent,
		Read:          n.Read,
		CreatedAt:     n.CreatedAt,
	}
}

// FromDomainNotificationList конвертирует список domain моделей в DTO
func FromDomainNotificationList(list []*domain.Notification) *NotificationListResponse {
	resp := &NotificationListResponse{
		Notifications: make([]NotificationResponse, 0, len(list)),
	}
	for _, n := range list {
		resp.Notifications = append(resp.Notifications, *FromDomainNotification(n))
	}
	resp.Total = len(resp.Notifications)
	return resp
}
