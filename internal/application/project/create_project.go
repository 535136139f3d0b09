package project

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/personaltask/taskmanager/internal/application/ports"
	"github.com/personaltask/taskmanager/internal/domain"
	domerrors "github.com/personaltask/taskmanager/internal/domain/errors"
)

// CreateProjectInput carries the owner from the verified identity, never from the request body.
type CreateProjectInput struct {
	Owner       domain.UserID
	Name        string
	Description string
}

// CreateProject creates a project owned by the caller.
type CreateProject struct {
	projects ports.ProjectRepository
	now      func() time.Time
}

// NewCreateProject builds the use case.
func NewCreateProject(projects ports.ProjectRepository) *CreateProject {
	return &CreateProject{projects: projects, now: time.Now}
}

// Execute validates the name and stores the project.
func (uc *CreateProject) Execute(ctx context.Context, input CreateProjectInput) (*domain.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domerrors.NewValidationError("name", "Name is required")
	}
	now := uc.now().UTC()
	project := &domain.Project{
		ID:          domain.NewProjectID(uuid.New()),
		UserID:      input.Owner,
		Name:        name,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}
