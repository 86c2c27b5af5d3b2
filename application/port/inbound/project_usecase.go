package inbound

import (
	"context"
	"time"

	"github.com/techpro/techpromanager/domain/entity"
)

type CreateProjectRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateProjectRequest is a partial update; nil fields are left unchanged.
type UpdateProjectRequest struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Status      *entity.ProjectStatus `json:"status"`
	DueDate     *time.Time            `json:"due_date"`
}

type ProjectUseCase interface {
	ListProjects(ctx context.Context, actor Actor) ([]*entity.Project, error)
	CreateProject(ctx context.Context, actor Actor, req CreateProjectRequest) (*entity.Project, error)
	GetProject(ctx context.Context, actor Actor, id string) (*entity.Project, error)
	UpdateProject(ctx context.Context, actor Actor, id string, req UpdateProjectRequest) (*entity.Project, error)
	DeleteProject(ctx context.Context, actor Actor, id string) error
}
