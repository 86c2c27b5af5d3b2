package outbound

import (
	"context"
	"errors"

	"github.com/techpro/techpromanager/domain/entity"
)

var ErrProjectNotFound = errors.New("project not found")

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	FindByID(ctx context.Context, id string) (*entity.Project, error)
	// FindAll returns every project when ownerID is empty.
	FindAll(ctx context.Context, ownerID string) ([]*entity.Project, error)
	Update(ctx context.Context, project *entity.Project) error
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id string) (bool, error)
}
