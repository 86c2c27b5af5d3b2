package outbound

import (
	"context"
	"errors"

	"github.com/techpro/techpromanager/domain/entity"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskFilter narrows FindAll. When VisibleTo is set, only tasks assigned to
// that user or belonging to a project the user owns are returned.
type TaskFilter struct {
	ProjectID string
	VisibleTo string
}

// TaskRepository persists tasks together with their assignee set.
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	FindByID(ctx context.Context, id string) (*entity.Task, error)
	FindAll(ctx context.Context, filter TaskFilter) ([]*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, id string) (bool, error)
}
