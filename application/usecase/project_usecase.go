package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/techpro/techpromanager/application/port/inbound"
	"github.com/techpro/techpromanager/application/port/outbound"
	"github.com/techpro/techpromanager/domain/entity"
	apperr "github.com/techpro/techpromanager/domain/error"
)

type ProjectUseCase struct {
	projectRepo outbound.ProjectRepository
}

func NewProjectUseCase(projectRepo outbound.ProjectRepository) *ProjectUseCase {
	return &ProjectUseCase{
		projectRepo: projectRepo,
	}
}

// ListProjects returns every project to admins and owned projects to everyone else
func (uc *ProjectUseCase) ListProjects(ctx context.Context, actor inbound.Actor) ([]*entity.Project, error) {
	ownerID := actor.UserID
	if actor.IsAdmin() {
		ownerID = ""
	}

	projects, err := uc.projectRepo.FindAll(ctx, ownerID)
	if err != nil {
		return nil, apperr.ErrInternalServerError("list projects", err)
	}
	return projects, nil
}

func (uc *ProjectUseCase) CreateProject(ctx context.Context, actor inbound.Actor, req inbound.CreateProjectRequest) (*entity.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.ErrMissingField("name")
	}

	project := entity.NewProject(name, strings.TrimSpace(req.Description), actor.UserID, req.DueDate)
	if err := uc.projectRepo.Create(ctx, project); err != nil {
		return nil, apperr.ErrInternalServerError("create project", err)
	}
	return project, nil
}

func (uc *ProjectUseCase) GetProject(ctx context.Context, actor inbound.Actor, id string) (*entity.Project, error) {
	project, err := uc.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, outbound.ErrProjectNotFound) {
			return nil, apperr.ErrNotFound("Project", id)
		}
		return nil, apperr.ErrInternalServerError("find project", err)
	}
	if !project.CanManage(actor.UserID, actor.Role) {
		return nil, apperr.ErrForbidden("project", id)
	}
	return project, nil
}

func (uc *ProjectUseCase) UpdateProject(ctx context.Context, actor inbound.Actor, id string, req inbound.UpdateProjectRequest) (*entity.Project, error) {
	project, err := uc.GetProject(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperr.ErrInvalidRequest("name cannot be empty")
		}
		project.Name = name
	}
	if req.Description != nil {
		project.Description = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, apperr.ErrInvalidRequest("status must be pending, active or completed")
		}
		project.Status = *req.Status
	}
	if req.DueDate != nil {
		project.DueDate = req.DueDate
	}
	project.Touch()

	if err := uc.projectRepo.Update(ctx, project); err != nil {
		if errors.Is(err, outbound.ErrProjectNotFound) {
			return nil, apperr.ErrNotFound("Project", id)
		}
		return nil, apperr.ErrInternalServerError("update project", err)
	}
	return project, nil
}

// DeleteProject removes the project and its tasks. Deleting a project that does
// not exist succeeds.
func (uc *ProjectUseCase) DeleteProject(ctx context.Context, actor inbound.Actor, id string) error {
	project, err := uc.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, outbound.ErrProjectNotFound) {
			return nil
		}
		return apperr.ErrInternalServerError("find project", err)
	}
	if !project.CanManage(actor.UserID, actor.Role) {
		return apperr.ErrForbidden("project", id)
	}

	if _, err := uc.projectRepo.Delete(ctx, id); err != nil {
		return apperr.ErrInternalServerError("delete project", err)
	}
	return nil
}
