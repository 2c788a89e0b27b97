package notifications

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SmartScheduler/internal/api/handlers"
	notificationService "github.com/m04kA/SMC-SmartScheduler/internal/service/notifications"
	"github.com/m04kA/SMC-SmartScheduler/internal/service/notifications/models"
)

const (
	msgInvalidNotificationID = "некорректный ID уведомления"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidParams         = "некорректные параметры запроса"
	msgNotificationNotFound  = "уведомление не найдено"
)

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/notifications
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "POST /notifications"

	var req models.CreateNotificationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, op, 0, err)
		return
	}

	h.logger.Info("%s - Notification created: notification_id=%d, type=%s", op, result.ID, result.Type)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// List GET /api/v1/notifications?userId=1&sent=false&read=false&upcoming=true&limit=20
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "GET /notifications"

	req, err := listRequest(r)
	if err != nil {
		h.logger.Warn("%s - Invalid parameters: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.respondError(w, op, 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/notifications/{notificationId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	h.withNotification(w, r, "GET /notifications/{notificationId}", h.service.GetByID)
}

// MarkSent PATCH /api/v1/notifications/{notificationId}/sent
func (h *Handler) MarkSent(w http.ResponseWriter, r *http.Request) {
	h.withNotification(w, r, "PATCH /notifications/{notificationId}/sent", h.service.MarkSent)
}

// MarkRead PATCH /api/v1/notifications/{notificationId}/read
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	h.withNotification(w, r, "PATCH /notifications/{notificationId}/read", h.service.MarkRead)
}

// Delete DELETE /api/v1/notifications/{notificationId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "DELETE /notifications/{notificationId}"

	id, err := handlers.PathInt64(r, "notificationId")
	if err != nil {
		h.logger.Warn("%s - Invalid notification ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidNotificationID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, op, id, err)
		return
	}

	h.logger.Info("%s - Notification deleted: notification_id=%d", op, id)
	handlers.RespondNoContent(w)
}

func (h *Handler) withNotification(w http.ResponseWriter, r *http.Request, op string, fn func(ctx context.Context, id int64) (*models.NotificationResponse, error)) {
	id, err := handlers.PathInt64(r, "notificationId")
	if err != nil {
		h.logger.Warn("%s - Invalid notification ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidNotificationID)
		return
	}

	result, err := fn(r.Context(), id)
	if err != nil {
		h.respondError(w, op, id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, id int64, err error) {
	switch {
	case errors.Is(err, notificationService.ErrNotificationNotFound):
		h.logger.Warn("%s - Notification not found: notification_id=%d", op, id)
		handlers.RespondNotFound(w, msgNotificationNotFound)

	case errors.Is(err, notificationService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", op, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Failed: notification_id=%d, error=%v", op, id, err)
		handlers.RespondInternalError(w)
	}
}

func listRequest(r *http.Request) (*models.ListNotificationsRequest, error) {
	userID, err := handlers.QueryInt64(r, "userId")
	if err != nil {
		return nil, err
	}
	sent, err := handlers.QueryBool(r, "sent")
	if err != nil {
		return nil, err
	}
	read, err := handlers.QueryBool(r, "read")
	if err != nil {
		return nil, err
	}
	upcoming, err := handlers.QueryBool(r, "upcoming")
	if err != nil {
		return nil, err
	}
	limit, err := handlers.QueryInt(r, "limit")
	if err != nil {
		return nil, err
	}

	return &models.ListNotificationsRequest{
		UserID:   userID,
		Sent:     sent,
		Read:     read,
		Upcoming: upcoming != nil && *upcoming,
		Limit:    limit,
	}, nil
}
