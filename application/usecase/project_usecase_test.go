package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/techpro/techpromanager/application/port/inbound"
	"github.com/techpro/techpromanager/application/port/outbound"
	"github.com/techpro/techpromanager/application/port/outbound/mocks"
	"github.com/techpro/techpromanager/domain/entity"
	apperr "github.com/techpro/techpromanager/domain/error"
)

var (
	owner = inbound.Actor{UserID: "owner-1", Role: entity.RoleMember}
	other = inbound.Actor{UserID: "other-1", Role: entity.RoleMember}
	admin = inbound.Actor{UserID: "admin-1", Role: entity.RoleAdmin}
	ctxBg = context.Background()
)

func TestProjectUseCase_ListProjects(t *testing.T) {
	repo := new(mocks.MockProjectRepository)
	uc := NewProjectUseCase(repo)
	repo.On("FindAll", ctxBg, "").Return([]*entity.Project{{ID: "p1"}, {ID: "p2"}}, nil)
	repo.On("FindAll", ctxBg, "owner-1").Return([]*entity.Project{{ID: "p1"}}, nil)

	all, err := uc.ListProjects(ctxBg, admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := uc.ListProjects(ctxBg, owner)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestProjectUseCase_CreateProject(t *testing.T) {
	t.Run("OwnerIsCaller", func(t *testing.T) {
		repo := new(mocks.MockProjectRepository)
		uc := NewProjectUseCase(repo)
		repo.On("Create", ctxBg, mock.MatchedBy(func(p *entity.Project) bool {
			return p.OwnerID == "owner-1" && p.Name == "Website" && p.Status == entity.ProjectStatusPending
		})).Return(nil)

		project, err := uc.CreateProject(ctxBg, owner, inbound.CreateProjectRequest{Name: "  Website "})

		require.NoError(t, err)
		assert.Equal(t, "Website", project.Name)
		repo.AssertExpectations(t)
	})

	t.Run("NameRequired", func(t *testing.T) {
		uc := NewProjectUseCase(new(mocks.MockProjectRepository))

		_, err := uc.CreateProject(ctxBg, owner, inbound.CreateProjectRequest{Name: " "})

		assert.Equal(t, 400, apperr.HTTPStatus(err))
	})
}

func TestProjectUseCase_GetProject(t *testing.T) {
	repo := new(mocks.MockProjectRepository)
	uc := NewProjectUseCase(repo)
	project := entity.NewProject("Website", "", "owner-1", nil)
	repo.On("FindByID", ctxBg, project.ID).Return(project, nil)
	repo.On("FindByID", ctxBg, "missing").Return(nil, outbound.ErrProjectNotFound)

	_, err := uc.GetProject(ctxBg, owner, project.ID)
	assert.NoError(t, err)

	_, err = uc.GetProject(ctxBg, admin, project.ID)
	assert.NoError(t, err)

	_, err = uc.GetProject(ctxBg, other, project.ID)
	assert.Equal(t, 403, apperr.HTTPStatus(err))

	_, err = uc.GetProject(ctxBg, owner, "missing")
	assert.Equal(t, 404, apperr.HTTPStatus(err))
}

func TestProjectUseCase_UpdateProject(t *testing.T) {
	t.Run("PartialUpdate", func(t *testing.T) {
		repo := new(mocks.MockProjectRepository)
		uc := NewProjectUseCase(repo)
		project := entity.NewProject("Website", "old", "owner-1", nil)
		repo.On("FindByID", ctxBg, project.ID).Return(project, nil)
		repo.On("Update", ctxBg, project).Return(nil)

		status := entity.ProjectStatusActive
		updated, err := uc.UpdateProject(ctxBg, owner, project.ID, inbound.UpdateProjectRequest{Status: &status})

		require.NoError(t, err)
		assert.Equal(t, entity.ProjectStatusActive, updated.Status)
		assert.Equal(t, "Website", updated.Name)
		assert.Equal(t, "old", updated.Description)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		repo := new(mocks.MockProjectRepository)
		uc := NewProjectUseCase(repo)
		project := entity.NewProject("Website", "", "owner-1", nil)
		repo.On("FindByID", ctxBg, project.ID).Return(project, nil)

		status := entity.ProjectStatus("archived")
		_, err := uc.UpdateProject(ctxBg, owner, project.ID, inbound.UpdateProjectRequest{Status: &status})

		assert.Equal(t, 400, apperr.HTTPStatus(err))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestProjectUseCase_DeleteProject(t *testing.T) {
	repo := new(mocks.MockProjectRepository)
	uc := NewProjectUseCase(repo)
	project := entity.NewProject("Website", "", "owner-1", nil)
	repo.On("FindByID", ctxBg, project.ID).Return(project, nil)
	repo.On("FindByID", ctxBg, "missing").Return(nil, outbound.ErrProjectNotFound)
	repo.On("Delete", ctxBg, project.ID).Return(true, nil)

	assert.NoError(t, uc.DeleteProject(ctxBg, owner, "missing"))
	assert.Equal(t, 403, apperr.HTTPStatus(uc.DeleteProject(ctxBg, other, project.ID)))
	assert.NoError(t, uc.DeleteProject(ctxBg, owner, project.ID))
	repo.AssertNumberOfCalls(t, "Delete", 1)
}
