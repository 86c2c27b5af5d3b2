package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/techpro/techpromanager/application/port/outbound"
	"github.com/techpro/techpromanager/domain/entity"
)

const taskColumns = `t.id, t.title, t.description, t.status, t.priority, t.due_date, t.project_id, t.created_at, t.updated_at`

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) outbound.TaskRepository {
	return &taskRepository{db: db}
}

func scanTask(row rowScanner) (*entity.Task, error) {
	var (
		task    entity.Task
		due     sql.NullTime
		project sql.NullString
	)
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&due,
		&project,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	task.DueDate = timePtr(due)
	if project.Valid {
		task.ProjectID = &project.String
	}
	task.AssigneeIDs = []string{}
	return &task, nil
}

func (r *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO tasks (id, title, description, status, priority, due_date, project_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = tx.ExecContext(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		nullTime(task.DueDate),
		task.ProjectID,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := insertAssignments(ctx, tx, task); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit task: %w", err)
	}
	return nil
}

func insertAssignments(ctx context.Context, tx *sql.Tx, task *entity.Task) error {
	for i, userID := range task.AssigneeIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO task_assignments (task_id, user_id, position) VALUES ($1, $2, $3)`,
			task.ID, userID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to assign user %s: %w", userID, err)
		}
	}
	return nil
}

func (r *taskRepository) FindByID(ctx context.Context, id string) (*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks t WHERE t.id = $1`

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if err := r.loadAssignees(ctx, []*entity.Task{task}); err != nil {
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) FindAll(ctx context.Context, filter outbound.TaskFilter) ([]*entity.Task, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.ProjectID != "" {
		args = append(args, filter.ProjectID)
		where = append(where, fmt.Sprintf("t.project_id = $%d", len(args)))
	}
	if filter.VisibleTo != "" {
		args = append(args, filter.VisibleTo)
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(p.owner_id = $%d OR EXISTS (SELECT 1 FROM task_assignments a WHERE a.task_id = t.id AND a.user_id = $%d))", n, n))
	}

	query := `SELECT ` + taskColumns + ` FROM tasks t LEFT JOIN projects p ON p.id = t.project_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY t.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*entity.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	if err := r.loadAssignees(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// loadAssignees fills AssigneeIDs for every task with a single query,
// preserving assignment order.
func (r *taskRepository) loadAssignees(ctx context.Context, tasks []*entity.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	byID := make(map[string]*entity.Task, len(tasks))
	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		byID[task.ID] = task
		ids = append(ids, task.ID)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT task_id, user_id FROM task_assignments WHERE task_id = ANY($1) ORDER BY task_id, position`,
		pq.Array(ids),
	)
	if err != nil {
		return fmt.Errorf("failed to load assignees: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var taskID, userID string
		if err := rows.Scan(&taskID, &userID); err != nil {
			return fmt.Errorf("failed to scan assignee: %w", err)
		}
		if task, ok := byID[taskID]; ok {
			task.AssigneeIDs = append(task.AssigneeIDs, userID)
		}
	}
	return rows.Err()
}

// Update writes the task row and replaces its assignee set in one transaction.
func (r *taskRepository) Update(ctx context.Context, task *entity.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, priority = $5, due_date = $6, project_id = $7, updated_at = $8
		WHERE id = $1
	`
	result, err := tx.ExecContext(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		nullTime(task.DueDate),
		task.ProjectID,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return outbound.ErrTaskNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM task_assignments WHERE task_id = $1`, task.ID); err != nil {
		return fmt.Errorf("failed to clear assignments: %w", err)
	}
	if err := insertAssignments(ctx, tx, task); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit task: %w", err)
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}
