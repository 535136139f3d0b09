package task

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/personaltask/taskmanager/internal/application/ports"
	"github.com/personaltask/taskmanager/internal/domain"
	domerrors "github.com/personaltask/taskmanager/internal/domain/errors"
)

// CreateTaskInput carries the owner from the verified identity. Any user id a
// client puts in the request body is not part of this input.
type CreateTaskInput struct {
	Owner       domain.UserID
	ProjectID   string
	Title       string
	Description string
	Status      string
	Priority    *int
	DueDate     string
}

type CreateTask struct {
	tasks    ports.TaskRepository
	projects ports.ProjectRepository
	now      func() time.Time
}

func NewCreateTask(tasks ports.TaskRepository, projects ports.ProjectRepository) *CreateTask {
	return &CreateTask{tasks: tasks, projects: projects, now: time.Now}
}

// Execute stores a task in one of the caller's projects.
func (uc *CreateTask) Execute(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	rawProjectID := strings.TrimSpace(input.ProjectID)
	if title == "" || rawProjectID == "" {
		return nil, domerrors.NewValidationError("title", "Title and Project ID are required")
	}
	projectID, err := domain.ParseProjectID(rawProjectID)
	if err != nil {
		return nil, domerrors.NewValidationError("projectId", "Invalid Project ID")
	}
	status, ok := domain.ParseTaskStatus(input.Status)
	if !ok {
		return nil, domerrors.NewValidationError("status", "Invalid status")
	}
	priority := domain.PriorityLow
	if input.Priority != nil {
		priority = domain.Priority(*input.Priority)
		if !priority.Valid() {
			return nil, domerrors.NewValidationError("priority", "Invalid priority")
		}
	}
	var due *time.Time
	if strings.TrimSpace(input.DueDate) != "" {
		d, ok := ParseDueDate(input.DueDate)
		if !ok {
			return nil, domerrors.NewValidationError("dueDate", "Invalid due date format")
		}
		due = &d
	}
	if err := requireOwnedProject(ctx, uc.projects, projectID, input.Owner); err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	task := &domain.Task{
		ID:          domain.NewTaskID(uuid.New()),
		ProjectID:   projectID,
		UserID:      input.Owner,
		Title:       title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     due,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func requireOwnedProject(ctx context.Context, projects ports.ProjectRepository, id domain.ProjectID, owner domain.UserID) error {
	project, err := projects.GetByID(ctx, id, owner)
	if err != nil {
		return err
	}
	if project == nil {
		return domerrors.ErrProjectNotFound
	}
	return nil
}
