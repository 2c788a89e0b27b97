package users

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SmartScheduler/internal/api/handlers"
	userService "github.com/m04kA/SMC-SmartScheduler/internal/service/users"
	"github.com/m04kA/SMC-SmartScheduler/internal/service/users/models"
)

const (
	msgInvalidUserID      = "некорректный ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUserNotFound       = "пользователь не найден"
	msgUserExists         = "пользователь с таким username или email уже существует"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/users
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "POST /users"

	var req models.CreateUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, userService.ErrUserExists):
			h.logger.Warn("%s - User exists: username=%q", op, req.Username)
			handlers.RespondError(w, http.StatusConflict, msgUserExists)
		case errors.Is(err, userService.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: %v", op, err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("%s - Failed to create user: %v", op, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - User created: user_id=%d", op, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Get GET /api/v1/users/{userId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "GET /users/{userId}"

	id, err := handlers.PathInt64(r, "userId")
	if err != nil {
		h.logger.Warn("%s - Invalid user ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, userService.ErrUserNotFound):
			h.logger.Warn("%s - User not found: user_id=%d", op, id)
			handlers.RespondNotFound(w, msgUserNotFound)
		case errors.Is(err, userService.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("%s - Failed to get user: user_id=%d, error=%v", op, id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
