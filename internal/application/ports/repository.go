package ports

import (
	"context"

	"github.com/personaltask/taskmanager/internal/domain"
)

// UserRepository defines persistence for users.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	// Create returns domerrors.ErrUserExists when the email is taken.
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error)
	// Update writes name, password hash and updated_at. Returns false when the user is gone.
	Update(ctx context.Context, user *domain.User) (bool, error)
}

// ProjectRepository defines persistence for projects. Every read and write
// other than Create is scoped by owner; a row owned by someone else is
// indistinguishable from a missing one.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id domain.ProjectID, owner domain.UserID) (*domain.Project, error)
	// ListByOwner returns the owner's projects, newest first.
	ListByOwner(ctx context.Context, owner domain.UserID) ([]*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) (bool, error)
	// Delete removes the project and its tasks.
	Delete(ctx context.Context, id domain.ProjectID, owner domain.UserID) (bool, error)
}

// TaskRepository defines persistence for tasks, scoped by owner like ProjectRepository.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id domain.TaskID, owner domain.UserID) (*domain.Task, error)
	// ListByOwner returns the owner's tasks, newest first.
	ListByOwner(ctx context.Context, owner domain.UserID) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) (bool, error)
	Delete(ctx context.Context, id domain.TaskID, owner domain.UserID) (bool, error)
}
