package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/techpro/techpromanager/application/port/outbound"
	"github.com/techpro/techpromanager/domain/entity"
)

const projectColumns = `id, name, description, status, due_date, owner_id, created_at, updated_at`

type projectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) outbound.ProjectRepository {
	return &projectRepository{db: db}
}

func scanProject(row rowScanner) (*entity.Project, error) {
	var (
		project entity.Project
		due     sql.NullTime
	)
	err := row.Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.Status,
		&due,
		&project.OwnerID,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	project.DueDate = timePtr(due)
	return &project, nil
}

func (r *projectRepository) Create(ctx context.Context, project *entity.Project) error {
	query := `
		INSERT INTO projects (id, name, description, status, due_date, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		project.ID,
		project.Name,
		project.Description,
		project.Status,
		nullTime(project.DueDate),
		project.OwnerID,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (r *projectRepository) FindByID(ctx context.Context, id string) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	project, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

func (r *projectRepository) FindAll(ctx context.Context, ownerID string) ([]*entity.Project, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if ownerID == "" {
		rows, err = r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC`)
	} else {
		rows, err = r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]*entity.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}
	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, project *entity.Project) error {
	query := `
		UPDATE projects
		SET name = $2, description = $3, status = $4, due_date = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		project.ID,
		project.Name,
		project.Description,
		project.Status,
		nullTime(project.DueDate),
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return outbound.ErrProjectNotFound
	}
	return nil
}

// Delete removes the project. Its tasks and their assignments go with it
// through ON DELETE CASCADE.
func (r *projectRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}
