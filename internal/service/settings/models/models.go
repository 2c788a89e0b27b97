package models

import (
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
)

// UpdateSettingsRequest запрос на обновление рабочего дня.
// Пустые поля сохраняют текущее значение.
type UpdateSettingsRequest struct {
	WorkStart              *string `json:"workStart,omitempty"` // "09:00"
	WorkEnd                *string `json:"workEnd,omitempty"`   // "17:00"
	DefaultDurationMinutes *int    `json:"defaultDurationMinutes,omitempty"`
}

// SettingsResponse ответ с настройками пользователя
type SettingsResponse struct {
	UserID                 int64      `json:"userId"`
	WorkStart              string     `json:"workStart"`
	WorkEnd                string     `json:"workEnd"`
	DefaultDurationMinutes int        `json:"defaultDurationMinutes"`
	IsDefault              bool       `json:"isDefault"`
	UpdatedAt              *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.ScheduleSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		UserID:                 s.UserID,
		WorkStart:              s.WorkStart.String(),
		WorkEnd:                s.WorkEnd.String(),
		DefaultDurationMinutes: s.DefaultDurationMinutes,
		IsDefault:              s.IsDefault(),
	}
	if !s.UpdatedAt.IsZero() {
		updated := s.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}
