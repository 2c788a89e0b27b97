package models

import (
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
)

// CreateUserRequest запрос на создание пользователя
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserResponse ответ с данными пользователя
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainUser конвертирует domain модель в DTO
func FromDomainUser(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
