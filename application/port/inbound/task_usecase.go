package inbound

import (
	"context"
	"time"

	"github.com/techpro/techpromanager/domain/entity"
)

type CreateTaskRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    entity.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"due_date"`
	ProjectID   *string             `json:"project_id"`
	AssigneeIDs []string            `json:"assignee_ids"`
}

// UpdateTaskRequest is a partial update. A non-nil AssigneeIDs replaces the
// whole assignment set.
type UpdateTaskRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Status      *entity.TaskStatus   `json:"status"`
	Priority    *entity.TaskPriority `json:"priority"`
	DueDate     *time.Time           `json:"due_date"`
	AssigneeIDs *[]string            `json:"assignee_ids"`
}

type TaskUseCase interface {
	ListTasks(ctx context.Context, actor Actor, projectID string) ([]*entity.Task, error)
	CreateTask(ctx context.Context, actor Actor, req CreateTaskRequest) (*entity.Task, error)
	GetTask(ctx context.Context, actor Actor, id string) (*entity.Task, error)
	UpdateTask(ctx context.Context, actor Actor, id string, req UpdateTaskRequest) (*entity.Task, error)
	DeleteTask(ctx context.Context, actor Actor, id string) error
}
