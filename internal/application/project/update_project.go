package project

import (
	"context"
	"strings"
	"time"

	"github.com/personaltask/taskmanager/internal/application/ports"
	"github.com/personaltask/taskmanager/internal/domain"
	domerrors "github.com/personaltask/taskmanager/internal/domain/errors"
)

// UpdateProjectInput replaces name and description. An empty name keeps the current one.
type UpdateProjectInput struct {
	Owner       domain.UserID
	ID          string
	Name        string
	Description *string
}

type UpdateProject struct {
	projects ports.ProjectRepository
	now      func() time.Time
}

func NewUpdateProject(projects ports.ProjectRepository) *UpdateProject {
	return &UpdateProject{projects: projects, now: time.Now}
}

// Execute returns ErrProjectNotFound when the project is missing or owned by someone else.
func (uc *UpdateProject) Execute(ctx context.Context, input UpdateProjectInput) (*domain.Project, error) {
	id, err := domain.ParseProjectID(strings.TrimSpace(input.ID))
	if err != nil {
		return nil, domerrors.NewValidationError("id", "Invalid Project ID")
	}
	project, err := uc.projects.GetByID(ctx, id, input.Owner)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domerrors.ErrProjectNotFound
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		project.Name = name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	project.UpdatedAt = uc.now().UTC()
	ok, err := uc.projects.Update(ctx, project)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domerrors.ErrProjectNotFound
	}
	return project, nil
}
