package handler

import (
	"net/http"

	"github.com/techpro/techpromanager/application/port/inbound"
	"github.com/techpro/techpromanager/infrastructure/http/response"
)

type ProjectHandler struct {
	projectUseCase inbound.ProjectUseCase
}

func NewProjectHandler(projectUseCase inbound.ProjectUseCase) *ProjectHandler {
	return &ProjectHandler{projectUseCase: projectUseCase}
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	projects, err := h.projectUseCase.ListProjects(r.Context(), caller)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "success", projects)
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	var req inbound.CreateProjectRequest
	if !decode(w, r, &req) {
		return
	}

	project, err := h.projectUseCase.CreateProject(r.Context(), caller, req)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Project created successfully", project)
}

func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "project")
	if !ok {
		return
	}

	project, err := h.projectUseCase.GetProject(r.Context(), caller, id)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "success", project)
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "project")
	if !ok {
		return
	}

	var req inbound.UpdateProjectRequest
	if !decode(w, r, &req) {
		return
	}

	project, err := h.projectUseCase.UpdateProject(r.Context(), caller, id, req)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Project updated successfully", project)
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := idParam(r)
	if !ok {
		// an id that cannot exist is already deleted
		response.NoContent(w)
		return
	}

	if err := h.projectUseCase.DeleteProject(r.Context(), caller, id); err != nil {
		response.AppError(w, err)
		return
	}

	response.NoContent(w)
}
