package task

import (
	"context"
	"strings"
	"time"

	"github.com/personaltask/taskmanager/internal/application/ports"
	"github.com/personaltask/taskmanager/internal/domain"
	domerrors "github.com/personaltask/taskmanager/internal/domain/errors"
)

// UpdateTaskInput replaces a task's fields. Title and ProjectID are required;
// nil optional fields keep their current value, as does an empty Status. An
// empty DueDate clears it.
type UpdateTaskInput struct {
	Owner       domain.UserID
	ID          string
	ProjectID   string
	Title       string
	Description *string
	Status      *string
	Priority    *int
	DueDate     *string
}

type UpdateTask struct {
	tasks    ports.TaskRepository
	projects ports.ProjectRepository
	now      func() time.Time
}

func NewUpdateTask(tasks ports.TaskRepository, projects ports.ProjectRepository) *UpdateTask {
	return &UpdateTask{tasks: tasks, projects: projects, now: time.Now}
}

// Execute returns ErrTaskNotFound when the task is missing or belongs to someone else.
func (uc *UpdateTask) Execute(ctx context.Context, input UpdateTaskInput) (*domain.Task, error) {
	id, err := domain.ParseTaskID(strings.TrimSpace(input.ID))
	if err != nil {
		return nil, domerrors.NewValidationError("id", "Invalid Task ID")
	}
	title := strings.TrimSpace(input.Title)
	rawProjectID := strings.TrimSpace(input.ProjectID)
	if title == "" || rawProjectID == "" {
		return nil, domerrors.NewValidationError("title", "Title and Project ID are required")
	}
	projectID, err := domain.ParseProjectID(rawProjectID)
	if err != nil {
		return nil, domerrors.NewValidationError("projectId", "Invalid Project ID")
	}

	task, err := uc.tasks.GetByID(ctx, id, input.Owner)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domerrors.ErrTaskNotFound
	}

	task.Title = title
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil && strings.TrimSpace(*input.Status) != "" {
		status, ok := domain.ParseTaskStatus(*input.Status)
		if !ok {
			return nil, domerrors.NewValidationError("status", "Invalid status")
		}
		task.Status = status
	}
	if input.Priority != nil {
		p := domain.Priority(*input.Priority)
		if !p.Valid() {
			return nil, domerrors.NewValidationError("priority", "Invalid priority")
		}
		task.Priority = p
	}
	if input.DueDate != nil {
		if strings.TrimSpace(*input.DueDate) == "" {
			task.DueDate = nil
		} else {
			d, ok := ParseDueDate(*input.DueDate)
			if !ok {
				return nil, domerrors.NewValidationError("dueDate", "Invalid due date format")
			}
			task.DueDate = &d
		}
	}
	if projectID != task.ProjectID {
		if err := requireOwnedProject(ctx, uc.projects, projectID, input.Owner); err != nil {
			return nil, err
		}
		task.ProjectID = projectID
	}
	task.UpdatedAt = uc.now().UTC()

	ok, err := uc.tasks.Update(ctx, task)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domerrors.ErrTaskNotFound
	}
	return task, nil
}
