package handler

import (
	"net/http"

	"github.com/techpro/techpromanager/application/port/inbound"
	"github.com/techpro/techpromanager/infrastructure/http/response"
	"github.com/techpro/techpromanager/infrastructure/http/validator"
)

type TaskHandler struct {
	taskUseCase inbound.TaskUseCase
}

func NewTaskHandler(taskUseCase inbound.TaskUseCase) *TaskHandler {
	return &TaskHandler{taskUseCase: taskUseCase}
}

// ListTasks supports an optional ?project_id= filter
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	projectID := r.URL.Query().Get("project_id")
	if projectID != "" && !validator.ValidateUUID(projectID) {
		response.BadRequest(w, "project_id must be a valid UUID")
		return
	}

	tasks, err := h.taskUseCase.ListTasks(r.Context(), caller, projectID)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "success", tasks)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	var req inbound.CreateTaskRequest
	if !decode(w, r, &req) {
		return
	}
	if req.ProjectID != nil && *req.ProjectID != "" && !validator.ValidateUUID(*req.ProjectID) {
		response.BadRequest(w, "project_id must be a valid UUID")
		return
	}
	for _, id := range req.AssigneeIDs {
		if !validator.ValidateUUID(id) {
			response.BadRequest(w, "assignee_ids must be valid UUIDs")
			return
		}
	}

	task, err := h.taskUseCase.CreateTask(r.Context(), caller, req)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Task created successfully", task)
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "task")
	if !ok {
		return
	}

	task, err := h.taskUseCase.GetTask(r.Context(), caller, id)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "success", task)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "task")
	if !ok {
		return
	}

	var req inbound.UpdateTaskRequest
	if !decode(w, r, &req) {
		return
	}
	if req.AssigneeIDs != nil {
		for _, assignee := range *req.AssigneeIDs {
			if !validator.ValidateUUID(assignee) {
				response.BadRequest(w, "assignee_ids must be valid UUIDs")
				return
			}
		}
	}

	task, err := h.taskUseCase.UpdateTask(r.Context(), caller, id, req)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Task updated successfully", task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := idParam(r)
	if !ok {
		response.NoContent(w)
		return
	}

	if err := h.taskUseCase.DeleteTask(r.Context(), caller, id); err != nil {
		response.AppError(w, err)
		return
	}

	response.NoContent(w)
}
