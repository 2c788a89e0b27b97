package domain

import (
	"time"

	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// ProjectStatus represents the lifecycle state of a project
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

// Project groups tasks and deadlines
type Project struct {
	ID                  int64
	Name                string
	Description         *string
	Status              ProjectStatus
	StartDate           *types.Date
	Deadline            *types.Date
	EstimatedCompletion *types.Date
	ProgressPercentage  float64
	Color               string
	CompletedAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DaysUntilDeadline returns whole days from today to the deadline, nil without deadline
func (p *Project) DaysUntilDeadline(today types.Date) *int {
	if p.Deadline == nil {
		return nil
	}
	days := int(p.Deadline.Time().Sub(today.Time()).Hours() / 24)
	return &days
}

// IsOverdue returns true if the project is unfinished and past its deadline
func (p *Project) IsOverdue(today types.Date) bool {
	if p.Deadline == nil || p.Status == ProjectStatusCompleted || p.Status == ProjectStatusCancelled {
		return false
	}
	return p.Deadline.Before(today)
}

// ProjectFilter filters project listings
type ProjectFilter struct {
	Status           *ProjectStatus
	IncludeCompleted bool
	DeadlineBefore   *types.Date
	Statuses         []ProjectStatus
}

// ProjectProgress is the share of completed tasks in percent, 0 for a project without tasks
func ProjectProgress(tasks []*Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Status == TaskStatusCompleted {
			completed++
		}
	}
	return float64(completed) / float64(len(tasks)) * MaxProgress
}
