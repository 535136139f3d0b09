// Package memory holds process-local repositories for development and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/personaltask/taskmanager/internal/application/ports"
	"github.com/personaltask/taskmanager/internal/domain"
	domerrors "github.com/personaltask/taskmanager/internal/domain/errors"
)

// Store keeps users, projects and tasks in maps guarded by one lock so that a
// project delete can take its tasks with it.
type Store struct {
	mu       sync.RWMutex
	users    map[domain.UserID]domain.User
	projects map[domain.ProjectID]domain.Project
	tasks    map[domain.TaskID]domain.Task
}

func NewStore() *Store {
	return &Store{
		users:    make(map[domain.UserID]domain.User),
		projects: make(map[domain.ProjectID]domain.Project),
		tasks:    make(map[domain.TaskID]domain.Task),
	}
}

// Users returns a UserRepository backed by s.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Projects returns a ProjectRepository backed by s.
func (s *Store) Projects() *ProjectRepository { return &ProjectRepository{s: s} }

// Tasks returns a TaskRepository backed by s.
func (s *Store) Tasks() *TaskRepository { return &TaskRepository{s: s} }

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domerrors.ErrUserExists
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) GetByID(_ context.Context, userID domain.UserID) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[userID]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepository) Update(_ context.Context, user *domain.User) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[user.ID]
	if !ok {
		return false, nil
	}
	u.Name = user.Name
	u.PasswordHash = user.PasswordHash
	u.UpdatedAt = user.UpdatedAt
	r.s.users[user.ID] = u
	return true, nil
}

type ProjectRepository struct{ s *Store }

func (r *ProjectRepository) Create(_ context.Context, p *domain.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.projects[p.ID] = *p
	return nil
}

func (r *ProjectRepository) GetByID(_ context.Context, id domain.ProjectID, owner domain.UserID) (*domain.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.projects[id]
	if !ok || !p.OwnedBy(owner) {
		return nil, nil
	}
	return &p, nil
}

func (r *ProjectRepository) ListByOwner(_ context.Context, owner domain.UserID) ([]*domain.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*domain.Project, 0)
	for _, p := range r.s.projects {
		if p.OwnedBy(owner) {
			p := p
			list = append(list, &p)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *ProjectRepository) Update(_ context.Context, p *domain.Project) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.projects[p.ID]
	if !ok || cur.UserID != p.UserID {
		return false, nil
	}
	cur.Name = p.Name
	cur.Description = p.Description
	cur.UpdatedAt = p.UpdatedAt
	r.s.projects[p.ID] = cur
	return true, nil
}

func (r *ProjectRepository) Delete(_ context.Context, id domain.ProjectID, owner domain.UserID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[id]
	if !ok || !p.OwnedBy(owner) {
		return false, nil
	}
	delete(r.s.projects, id)
	for tid, t := range r.s.tasks {
		if t.ProjectID == id {
			delete(r.s.tasks, tid)
		}
	}
	return true, nil
}

type TaskRepository struct{ s *Store }

func (r *TaskRepository) Create(_ context.Context, t *domain.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.tasks[t.ID] = *t
	return nil
}

func (r *TaskRepository) GetByID(_ context.Context, id domain.TaskID, owner domain.UserID) (*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tasks[id]
	if !ok || !t.OwnedBy(owner) {
		return nil, nil
	}
	return &t, nil
}

func (r *TaskRepository) ListByOwner(_ context.Context, owner domain.UserID) ([]*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*domain.Task, 0)
	for _, t := range r.s.tasks {
		if t.OwnedBy(owner) {
			t := t
			list = append(list, &t)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *TaskRepository) Update(_ context.Context, t *domain.Task) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.tasks[t.ID]
	if !ok || cur.UserID != t.UserID {
		return false, nil
	}
	t.CreatedAt = cur.CreatedAt
	r.s.tasks[t.ID] = *t
	return true, nil
}

func (r *TaskRepository) Delete(_ context.Context, id domain.TaskID, owner domain.UserID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok || !t.OwnedBy(owner) {
		return false, nil
	}
	delete(r.s.tasks, id)
	return true, nil
}

var (
	_ ports.UserRepository    = (*UserRepository)(nil)
	_ ports.ProjectRepository = (*ProjectRepository)(nil)
	_ ports.TaskRepository    = (*TaskRepository)(nil)
)
