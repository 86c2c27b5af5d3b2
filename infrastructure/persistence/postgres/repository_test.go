package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techpro/techpromanager/application/port/outbound"
	"github.com/techpro/techpromanager/domain/entity"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var (
	userCols    = []string{"id", "name", "email", "password_hash", "role", "avatar_url", "created_at", "updated_at"}
	projectCols = []string{"id", "name", "description", "status", "due_date", "owner_id", "created_at", "updated_at"}
	taskCols    = []string{"id", "title", "description", "status", "priority", "due_date", "project_id", "created_at", "updated_at"}
)

func TestUserRepository_FindByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
			WithArgs("a@x.com").
			WillReturnRows(sqlmock.NewRows(userCols).
				AddRow("u1", "Alice", "a@x.com", "salt:key", "admin", "https://img/a.png", now, now))

		user, err := repo.FindByEmail(ctx, "a@x.com")

		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		assert.Equal(t, entity.RoleAdmin, user.Role)
		assert.Equal(t, "salt:key", user.PasswordHash)
		require.NotNil(t, user.AvatarURL)
		assert.Equal(t, "https://img/a.png", *user.AvatarURL)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
			WithArgs("ghost@x.com").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByEmail(ctx, "ghost@x.com")

		assert.ErrorIs(t, err, outbound.ErrUserNotFound)
	})

	t.Run("DatabaseError", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
			WillReturnError(errors.New("db down"))

		_, err := repo.FindByEmail(ctx, "a@x.com")

		require.Error(t, err)
		assert.NotErrorIs(t, err, outbound.ErrUserNotFound)
		assert.Contains(t, err.Error(), "db down")
	})
}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	user := entity.NewMember("Alice", "a@x.com", "salt:key")

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec(`INSERT INTO users`).
			WithArgs(user.ID, "Alice", "a@x.com", "salt:key", "member", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, user))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UniqueViolation", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		assert.ErrorIs(t, repo.Create(ctx, user), outbound.ErrUserAlreadyExists)
	})
}

func TestUserRepository_Update_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	user := entity.NewMember("Alice", "a@x.com", "salt:key")

	mock.ExpectExec(`UPDATE users`).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Update(context.Background(), user), outbound.ErrUserNotFound)
}

func TestUserRepository_FindAll(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE name ILIKE \$1 AND role = \$2`).
		WithArgs("%ali%", "member").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT .+ FROM users WHERE name ILIKE \$1 AND role = \$2 ORDER BY created_at ASC LIMIT \$3 OFFSET \$4`).
		WithArgs("%ali%", "member", 2, 2).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("u3", "Alina", "alina@x.com", "s:k", "member", nil, now, now))

	users, total, err := repo.FindAll(context.Background(), 2, 2, outbound.UserFilters{Name: "ali", Role: "member"})

	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, users, 1)
	assert.Nil(t, users[0].AvatarURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByEmail(context.Background(), "a@x.com")

	require.NoError(t, err)
	assert.True(t, exists)
}

func TestProjectRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("Owned", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewProjectRepository(db)

		mock.ExpectQuery(`SELECT .+ FROM projects WHERE owner_id = \$1`).
			WithArgs("owner-1").
			WillReturnRows(sqlmock.NewRows(projectCols).
				AddRow("p1", "Website", "", "active", now, "owner-1", now, now))

		projects, err := repo.FindAll(ctx, "owner-1")

		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, entity.ProjectStatusActive, projects[0].Status)
		require.NotNil(t, projects[0].DueDate)
	})

	t.Run("All", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewProjectRepository(db)

		mock.ExpectQuery(`SELECT .+ FROM projects ORDER BY created_at DESC`).
			WillReturnRows(sqlmock.NewRows(projectCols))

		projects, err := repo.FindAll(ctx, "")

		require.NoError(t, err)
		assert.NotNil(t, projects)
		assert.Empty(t, projects)
	})
}

func TestProjectRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM projects WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")

	assert.ErrorIs(t, err, outbound.ErrProjectNotFound)
}

func TestProjectRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepository(db)

	mock.ExpectExec(`DELETE FROM projects WHERE id = \$1`).WithArgs("p1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM projects WHERE id = \$1`).WithArgs("p1").WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), "p1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestTaskRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("WritesAssignmentsInOrder", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTaskRepository(db)
		task := entity.NewTask("Fix bug", "", entity.TaskPriorityHigh, nil, nil)
		task.Assign("u2", "u1")

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO tasks`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO task_assignments`).WithArgs(task.ID, "u2", 0).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO task_assignments`).WithArgs(task.ID, "u1", 1).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Create(ctx, task))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollsBackOnAssignmentFailure", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTaskRepository(db)
		task := entity.NewTask("Fix bug", "", "", nil, nil)
		task.Assign("ghost")

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO tasks`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO task_assignments`).WillReturnError(errors.New("fk violation"))
		mock.ExpectRollback()

		require.Error(t, repo.Create(ctx, task))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTaskRepository_FindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT .+ FROM tasks t WHERE t.id = \$1`).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows(taskCols).
			AddRow("t1", "Fix bug", "", "in_progress", "high", nil, "p1", now, now))
	mock.ExpectQuery(`SELECT task_id, user_id FROM task_assignments WHERE task_id = ANY\(\$1\)`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"task_id", "user_id"}).
			AddRow("t1", "u2").
			AddRow("t1", "u1"))

	task, err := repo.FindByID(context.Background(), "t1")

	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusInProgress, task.Status)
	require.NotNil(t, task.ProjectID)
	assert.Equal(t, "p1", *task.ProjectID)
	assert.Nil(t, task.DueDate)
	assert.Equal(t, []string{"u2", "u1"}, task.AssigneeIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_FindAll_VisibleTo(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM tasks t LEFT JOIN projects p ON p.id = t.project_id WHERE t.project_id = \$1 AND \(p.owner_id = \$2 OR EXISTS`).
		WithArgs("p1", "u1").
		WillReturnRows(sqlmock.NewRows(taskCols).
			AddRow("t1", "A", "", "pending", "low", nil, "p1", now, now).
			AddRow("t2", "B", "", "done", "medium", nil, "p1", now, now))
	mock.ExpectQuery(`FROM task_assignments`).
		WillReturnRows(sqlmock.NewRows([]string{"task_id", "user_id"}).AddRow("t2", "u1"))

	tasks, err := repo.FindAll(context.Background(), outbound.TaskFilter{ProjectID: "p1", VisibleTo: "u1"})

	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, []string{}, tasks[0].AssigneeIDs)
	assert.Equal(t, []string{"u1"}, tasks[1].AssigneeIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Update_ReplacesAssignments(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)
	task := entity.NewTask("Fix bug", "", "", nil, nil)
	task.Assign("u3")

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE tasks`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM task_assignments WHERE task_id = \$1`).WithArgs(task.ID).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO task_assignments`).WithArgs(task.ID, "u3", 0).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), task))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Update_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE tasks`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), entity.NewTask("x", "", "", nil, nil))

	assert.ErrorIs(t, err, outbound.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
