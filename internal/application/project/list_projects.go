package project

import (
	"context"

	"github.com/personaltask/taskmanager/internal/application/ports"
	"github.com/personaltask/taskmanager/internal/domain"
)

// ListProjects returns the caller's projects, newest first.
type ListProjects struct {
	projects ports.ProjectRepository
}

func NewListProjects(projects ports.ProjectRepository) *ListProjects {
	return &ListProjects{projects: projects}
}

func (uc *ListProjects) Execute(ctx context.Context, owner domain.UserID) ([]*domain.Project, error) {
	return uc.projects.ListByOwner(ctx, owner)
}
