package task

import (
	"context"
	"strings"

	"github.com/personaltask/taskmanager/internal/application/ports"
	"github.com/personaltask/taskmanager/internal/domain"
	domerrors "github.com/personaltask/taskmanager/internal/domain/errors"
)

type DeleteTask struct {
	tasks ports.TaskRepository
}

func NewDeleteTask(tasks ports.TaskRepository) *DeleteTask {
	return &DeleteTask{tasks: tasks}
}

// Execute deletes one of the caller's tasks.
func (uc *DeleteTask) Execute(ctx context.Context, owner domain.UserID, rawID string) error {
	id, err := domain.ParseTaskID(strings.TrimSpace(rawID))
	if err != nil {
		return domerrors.NewValidationError("id", "Invalid Task ID")
	}
	ok, err := uc.tasks.Delete(ctx, id, owner)
	if err != nil {
		return err
	}
	if !ok {
		return domerrors.ErrTaskNotFound
	}
	return nil
}
