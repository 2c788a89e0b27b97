package models

import (
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// CreateProjectRequest запрос на создание проекта
type CreateProjectRequest struct {
	Name                string      `json:"name"`
	Description         *string     `json:"description,omitempty"`
	Status              string      `json:"status,omitempty"`    // active по умолчанию
	StartDate           *types.Date `json:"startDate,omitempty"` // сегодня по умолчанию
	Deadline            *types.Date `json:"deadline,omitempty"`
	EstimatedCompletion *types.Date `json:"estimatedCompletion,omitempty"`
	Color               *string     `json:"color,omitempty"`
}

// ListProjectsRequest фильтры списка проектов
type ListProjectsRequest struct {
	Status           *string
	IncludeCompleted bool
}

// ProjectResponse ответ с данными проекта
type ProjectResponse struct {
	ID                  int64       `json:"id"`
	Name                string      `json:"name"`
	Description         *string     `json:"description,omitempty"`
	Status              string      `json:"status"`
	StartDate           *types.Date `json:"startDate,omitempty"`
	Deadline            *types.Date `json:"deadline,omitempty"`
	EstimatedCompletion *types.Date `json:"estimatedCompletion,omitempty"`
	ProgressPercentage  float64     `json:"progressPercentage"`
	Color               string      `json:"color"`
	DaysUntilDeadline   *int        `json:"daysUntilDeadline,omitempty"`
	IsOverdue           bool        `json:"isOverdue"`
	CompletedAt         *time.Time  `json:"completedAt,omitempty"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
}

// ProjectListResponse ответ со списком проектов
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Total    int               `json:"total"`
}

// FromDomainProject конвертирует domain модель в DTO
func FromDomainProject(p *domain.Project, today types.Date) *ProjectResponse {
	if p == nil {
		return nil
	}

	return &ProjectResponse{
		ID:                  p.ID,
		Name:                p.Name,
		Description:         p.Description,
		Status:              string(p.Status),
		StartDate:           p.StartDate,
		Deadline:            p.Deadline,
		EstimatedCompletion: p.EstimatedCompletion,
		ProgressPercentage:  p.ProgressPercentage,
		Color:               p.Color,
		DaysUntilDeadline:   p.DaysUntilDeadline(today),
		IsOverdue:           p.IsOverdue(today),
		CompletedAt:         p.CompletedAt,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

// FromDomainProjectList конвертирует список domain моделей в DTO
func FromDomainProjectList(projects []*domain.Project, today types.Date) *ProjectListResponse {
	resp := &ProjectListResponse{
		Projects: make([]ProjectResponse, 0, len(projects)),
	}
	for _, p := range projects {
		resp.Projects = append(resp.Projects, *FromDomainProject(p, today))
	}
	resp.Total = len(resp.Projects)
	return resp
}
