// Package memory provides repository implementations backed by process memory.
// It serves DATABASE_TYPE=memory and end-to-end tests; nothing survives a restart.
package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/techpro/techpromanager/application/port/outbound"
	"github.com/techpro/techpromanager/domain/entity"
)

// Store holds users, projects and tasks behind a single lock so that
// cascading deletes are atomic. Values are copied on the way in and out.
type Store struct {
	mu       sync.RWMutex
	users    map[string]*entity.User
	emails   map[string]string
	projects map[string]*entity.Project
	tasks    map[string]*entity.Task
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]*entity.User),
		emails:   make(map[string]string),
		projects: make(map[string]*entity.Project),
		tasks:    make(map[string]*entity.Task),
	}
}

func (s *Store) Users() outbound.UserRepository       { return &userRepository{s} }
func (s *Store) Projects() outbound.ProjectRepository { return &projectRepository{s} }
func (s *Store) Tasks() outbound.TaskRepository       { return &taskRepository{s} }

func copyUser(u *entity.User) *entity.User {
	c := *u
	if u.AvatarURL != nil {
		avatar := *u.AvatarURL
		c.AvatarURL = &avatar
	}
	return &c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func copyProject(p *entity.Project) *entity.Project {
	c := *p
	c.DueDate = copyTime(p.DueDate)
	return &c
}

func copyTask(t *entity.Task) *entity.Task {
	c := *t
	c.DueDate = copyTime(t.DueDate)
	if t.ProjectID != nil {
		id := *t.ProjectID
		c.ProjectID = &id
	}
	c.AssigneeIDs = slices.Clone(t.AssigneeIDs)
	if c.AssigneeIDs == nil {
		c.AssigneeIDs = []string{}
	}
	return &c
}

type userRepository struct{ s *Store }

func (r *userRepository) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, outbound.ErrUserNotFound
	}
	return copyUser(u), nil
}

func (r *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emails[email]
	if !ok {
		return nil, outbound.ErrUserNotFound
	}
	return copyUser(r.s.users[id]), nil
}

func (r *userRepository) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.emails[user.Email]; ok {
		return outbound.ErrUserAlreadyExists
	}
	if _, ok := r.s.users[user.ID]; ok {
		return outbound.ErrUserAlreadyExists
	}
	r.s.users[user.ID] = copyUser(user)
	r.s.emails[user.Email] = user.ID
	return nil
}

func (r *userRepository) Update(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.users[user.ID]
	if !ok {
		return outbound.ErrUserNotFound
	}
	if existing.Email != user.Email {
		if _, taken := r.s.emails[user.Email]; taken {
			return outbound.ErrUserAlreadyExists
		}
		delete(r.s.emails, existing.Email)
		r.s.emails[user.Email] = user.ID
	}
	r.s.users[user.ID] = copyUser(user)
	return nil
}

func (r *userRepository) FindAll(_ context.Context, offset, limit int, filters outbound.UserFilters) ([]*entity.User, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	name := strings.ToLower(filters.Name)
	matched := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		if name != "" && !strings.Contains(strings.ToLower(u.Name), name) {
			continue
		}
		if filters.Role != "" && string(u.Role) != filters.Role {
			continue
		}
		matched = append(matched, u)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	total := len(matched)
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}

	page := make([]*entity.User, 0, end-offset)
	for _, u := range matched[offset:end] {
		page = append(page, copyUser(u))
	}
	return page, total, nil
}

func (r *userRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.emails[email]
	return ok, nil
}

type projectRepository struct{ s *Store }

func (r *projectRepository) Create(_ context.Context, project *entity.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.projects[project.ID] = copyProject(project)
	return nil
}

func (r *projectRepository) FindByID(_ context.Context, id string) (*entity.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.projects[id]
	if !ok {
		return nil, outbound.ErrProjectNotFound
	}
	return copyProject(p), nil
}

func (r *projectRepository) FindAll(_ context.Context, ownerID string) ([]*entity.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	projects := make([]*entity.Project, 0, len(r.s.projects))
	for _, p := range r.s.projects {
		if ownerID != "" && p.OwnerID != ownerID {
			continue
		}
		projects = append(projects, copyProject(p))
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
	return projects, nil
}

func (r *projectRepository) Update(_ context.Context, project *entity.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.projects[project.ID]; !ok {
		return outbound.ErrProjectNotFound
	}
	r.s.projects[project.ID] = copyProject(project)
	return nil
}

// Delete removes the project and every task attached to it.
func (r *projectRepository) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.projects[id]; !ok {
		return false, nil
	}
	delete(r.s.projects, id)
	for taskID, t := range r.s.tasks {
		if t.ProjectID != nil && *t.ProjectID == id {
			delete(r.s.tasks, taskID)
		}
	}
	return true, nil
}

type taskRepository struct{ s *Store }

func (r *taskRepository) Create(_ context.Context, task *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.tasks[task.ID] = copyTask(task)
	return nil
}

func (r *taskRepository) FindByID(_ context.Context, id string) (*entity.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tasks[id]
	if !ok {
		return nil, outbound.ErrTaskNotFound
	}
	return copyTask(t), nil
}

func (r *taskRepository) FindAll(_ context.Context, filter outbound.TaskFilter) ([]*entity.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tasks := make([]*entity.Task, 0, len(r.s.tasks))
	for _, t := range r.s.tasks {
		if filter.ProjectID != "" && (t.ProjectID == nil || *t.ProjectID != filter.ProjectID) {
			continue
		}
		if filter.VisibleTo != "" && !r.visibleTo(t, filter.VisibleTo) {
			continue
		}
		tasks = append(tasks, copyTask(t))
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

// visibleTo must be called with the lock held.
func (r *taskRepository) visibleTo(t *entity.Task, userID string) bool {
	if t.IsAssignedTo(userID) {
		return true
	}
	if t.ProjectID == nil {
		return false
	}
	p, ok := r.s.projects[*t.ProjectID]
	return ok && p.OwnerID == userID
}

func (r *taskRepository) Update(_ context.Context, task *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tasks[task.ID]; !ok {
		return outbound.ErrTaskNotFound
	}
	r.s.tasks[task.ID] = copyTask(task)
	return nil
}

func (r *taskRepository) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tasks[id]; !ok {
		return false, nil
	}
	delete(r.s.tasks, id)
	return true, nil
}
