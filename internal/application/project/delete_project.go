package project

import (
	"context"
	"strings"

	"github.com/personaltask/taskmanager/internal/application/ports"
	"github.com/personaltask/taskmanager/internal/domain"
	domerrors "github.com/personaltask/taskmanager/internal/domain/errors"
)

// DeleteProject removes one of the caller's projects together with its tasks.
type DeleteProject struct {
	projects ports.ProjectRepository
}

func NewDeleteProject(projects ports.ProjectRepository) *DeleteProject {
	return &DeleteProject{projects: projects}
}

// Execute returns the deleted project.
func (uc *DeleteProject) Execute(ctx context.Context, owner domain.UserID, rawID string) (*domain.Project, error) {
	id, err := domain.ParseProjectID(strings.TrimSpace(rawID))
	if err != nil {
		return nil, domerrors.NewValidationError("id", "Invalid Project ID")
	}
	project, err := uc.projects.GetByID(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domerrors.ErrProjectNotFound
	}
	ok, err := uc.projects.Delete(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domerrors.ErrProjectNotFound
	}
	return project, nil
}
