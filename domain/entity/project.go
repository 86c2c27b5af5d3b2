package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus represents the lifecycle state of a project
type ProjectStatus string

const (
	ProjectStatusPending   ProjectStatus = "pending"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPending, ProjectStatusActive, ProjectStatusCompleted:
		return true
	}
	return false
}

// Project is a container of tasks owned by a single user
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	DueDate     *time.Time    `json:"due_date,omitempty"`
	OwnerID     string        `json:"owner_id"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// NewProject creates a pending project owned by ownerID
func NewProject(name, description, ownerID string, dueDate *time.Time) *Project {
	now := time.Now().UTC()
	return &Project{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Status:      ProjectStatusPending,
		DueDate:     dueDate,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CanManage reports whether the given identity may read, update or delete the project.
func (p *Project) CanManage(userID string, role Role) bool {
	return role == RoleAdmin || p.OwnerID == userID
}

// Touch bumps UpdatedAt after a mutation
func (p *Project) Touch() {
	p.UpdatedAt = time.Now().UTC()
}
