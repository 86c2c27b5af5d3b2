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

type TaskUseCase struct {
	taskRepo    outbound.TaskRepository
	projectRepo outbound.ProjectRepository
	userRepo    outbound.UserRepository
}

func NewTaskUseCase(
	taskRepo outbound.TaskRepository,
	projectRepo outbound.ProjectRepository,
	userRepo outbound.UserRepository,
) *TaskUseCase {
	return &TaskUseCase{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

func (uc *TaskUseCase) ListTasks(ctx context.Context, actor inbound.Actor, projectID string) ([]*entity.Task, error) {
	filter := outbound.TaskFilter{ProjectID: projectID}
	if !actor.IsAdmin() {
		filter.VisibleTo = actor.UserID
	}

	tasks, err := uc.taskRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, apperr.ErrInternalServerError("list tasks", err)
	}
	return tasks, nil
}

// CreateTask always assigns the creator in addition to any requested assignees
func (uc *TaskUseCase) CreateTask(ctx context.Context, actor inbound.Actor, req inbound.CreateTaskRequest) (*entity.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperr.ErrMissingField("title")
	}
	if req.Priority != "" && !req.Priority.IsValid() {
		return nil, apperr.ErrInvalidRequest("priority must be low, medium or high")
	}

	var projectID *string
	if req.ProjectID != nil && *req.ProjectID != "" {
		project, err := uc.projectRepo.FindByID(ctx, *req.ProjectID)
		if err != nil {
			if errors.Is(err, outbound.ErrProjectNotFound) {
				return nil, apperr.ErrNotFound("Project", *req.ProjectID)
			}
			return nil, apperr.ErrInternalServerError("find project", err)
		}
		if !project.CanManage(actor.UserID, actor.Role) {
			return nil, apperr.ErrForbidden("project", project.ID)
		}
		projectID = &project.ID
	}

	if err := uc.ensureUsersExist(ctx, req.AssigneeIDs); err != nil {
		return nil, err
	}

	task := entity.NewTask(title, strings.TrimSpace(req.Description), req.Priority, req.DueDate, projectID)
	task.Assign(append(append([]string{}, req.AssigneeIDs...), actor.UserID)...)

	if err := uc.taskRepo.Create(ctx, task); err != nil {
		return nil, apperr.ErrInternalServerError("create task", err)
	}
	return task, nil
}

func (uc *TaskUseCase) GetTask(ctx context.Context, actor inbound.Actor, id string) (*entity.Task, error) {
	task, err := uc.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, outbound.ErrTaskNotFound) {
			return nil, apperr.ErrNotFound("Task", id)
		}
		return nil, apperr.ErrInternalServerError("find task", err)
	}

	allowed, err := uc.canAccess(ctx, actor, task)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperr.ErrForbidden("task", id)
	}
	return task, nil
}

func (uc *TaskUseCase) UpdateTask(ctx context.Context, actor inbound.Actor, id string, req inbound.UpdateTaskRequest) (*entity.Task, error) {
	task, err := uc.GetTask(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperr.ErrInvalidRequest("title cannot be empty")
		}
		task.Title = title
	}
	if req.Description != nil {
		task.Description = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, apperr.ErrInvalidRequest("status must be pending, in_progress or done")
		}
		task.Status = *req.Status
	}
	if req.Priority != nil {
		if !req.Priority.IsValid() {
			return nil, apperr.ErrInvalidRequest("priority must be low, medium or high")
		}
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.AssigneeIDs != nil {
		if err := uc.ensureUsersExist(ctx, *req.AssigneeIDs); err != nil {
			return nil, err
		}
		task.Assign(*req.AssigneeIDs...)
	}
	task.Touch()

	if err := uc.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, outbound.ErrTaskNotFound) {
			return nil, apperr.ErrNotFound("Task", id)
		}
		return nil, apperr.ErrInternalServerError("update task", err)
	}
	return task, nil
}

// DeleteTask is idempotent: a missing task is not an error
func (uc *TaskUseCase) DeleteTask(ctx context.Context, actor inbound.Actor, id string) error {
	task, err := uc.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, outbound.ErrTaskNotFound) {
			return nil
		}
		return apperr.ErrInternalServerError("find task", err)
	}

	allowed, err := uc.canAccess(ctx, actor, task)
	if err != nil {
		return err
	}
	if !allowed {
		return apperr.ErrForbidden("task", id)
	}

	if _, err := uc.taskRepo.Delete(ctx, id); err != nil {
		return apperr.ErrInternalServerError("delete task", err)
	}
	return nil
}

func (uc *TaskUseCase) canAccess(ctx context.Context, actor inbound.Actor, task *entity.Task) (bool, error) {
	if actor.IsAdmin() || task.IsAssignedTo(actor.UserID) {
		return true, nil
	}
	if task.ProjectID == nil {
		return false, nil
	}

	project, err := uc.projectRepo.FindByID(ctx, *task.ProjectID)
	if err != nil {
		if errors.Is(err, outbound.ErrProjectNotFound) {
			return false, nil
		}
		return false, apperr.ErrInternalServerError("find project", err)
	}
	return project.OwnerID == actor.UserID, nil
}

func (uc *TaskUseCase) ensureUsersExist(ctx context.Context, userIDs []string) error {
	for _, id := range userIDs {
		if id == "" {
			continue
		}
		if _, err := uc.userRepo.FindByID(ctx, id); err != nil {
			if errors.Is(err, outbound.ErrUserNotFound) {
				return apperr.ErrInvalidRequest("unknown assignee: " + id)
			}
			return apperr.ErrInternalServerError("find assignee", err)
		}
	}
	return nil
}
