package task

import (
	"context"

	"github.com/personaltask/taskmanager/internal/application/ports"
	"github.com/personaltask/taskmanager/internal/domain"
)

// ListTasks returns the caller's tasks across all projects, newest first.
type ListTasks struct {
	tasks ports.TaskRepository
}

func NewListTasks(tasks ports.TaskRepository) *ListTasks {
	return &ListTasks{tasks: tasks}
}

func (uc *ListTasks) Execute(ctx context.Context, owner domain.UserID) ([]*domain.Task, error) {
	return uc.tasks.ListByOwner(ctx, owner)
}
