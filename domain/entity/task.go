package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the Kanban column a task sits in
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task is a unit of work, optionally attached to a project and assigned to users
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	ProjectID   *string      `json:"project_id,omitempty"`
	AssigneeIDs []string     `json:"assignee_ids"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewTask creates a pending task. An empty priority defaults to medium.
func NewTask(title, description string, priority TaskPriority, dueDate *time.Time, projectID *string) *Task {
	if priority == "" {
		priority = TaskPriorityMedium
	}
	now := time.Now().UTC()
	return &Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Status:      TaskStatusPending,
		Priority:    priority,
		DueDate:     dueDate,
		ProjectID:   projectID,
		AssigneeIDs: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Assign replaces the assignee set, dropping duplicates and keeping order.
func (t *Task) Assign(userIDs ...string) {
	assignees := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		if id == "" || slices.Contains(assignees, id) {
			continue
		}
		assignees = append(assignees, id)
	}
	t.AssigneeIDs = assignees
}

func (t *Task) IsAssignedTo(userID string) bool {
	return slices.Contains(t.AssigneeIDs, userID)
}

func (t *Task) Touch() {
	t.UpdatedAt = time.Now().UTC()
}
