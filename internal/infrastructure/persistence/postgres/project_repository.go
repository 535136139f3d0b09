package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/personaltask/taskmanager/internal/application/ports"
	"github.com/personaltask/taskmanager/internal/domain"
)

const (
	insertProjectSQL = `INSERT INTO projects (id, user_id, name, description, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	selectProjectColumns = `SELECT id, user_id, name, COALESCE(description, ''), created_at, updated_at FROM projects`
	getProjectSQL        = selectProjectColumns + ` WHERE id = $1 AND user_id = $2`
	listProjectsSQL      = selectProjectColumns + ` WHERE user_id = $1 ORDER BY created_at DESC`
	updateProjectSQL     = `UPDATE projects SET name = $1, description = $2, updated_at = $3 WHERE id = $4 AND user_id = $5`
	deleteProjectSQL     = `DELETE FROM projects WHERE id = $1 AND user_id = $2`
)

// ProjectRepository stores projects. Task rows go with their project through
// the ON DELETE CASCADE foreign key.
type ProjectRepository struct {
	db DBTX
}

func NewProjectRepository(db DBTX) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	_, err := r.db.Exec(ctx, insertProjectSQL,
		p.ID.UUID, p.UserID.UUID, p.Name, p.Description, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id domain.ProjectID, owner domain.UserID) (*domain.Project, error) {
	p, err := scanProject(r.db.QueryRow(ctx, getProjectSQL, id.UUID, owner.UUID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select project: %w", err)
	}
	return p, nil
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, owner domain.UserID) ([]*domain.Project, error) {
	rows, err := r.db.Query(ctx, listProjectsSQL, owner.UUID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	list := make([]*domain.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return list, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) (bool, error) {
	tag, err := r.db.Exec(ctx, updateProjectSQL, p.Name, p.Description, p.UpdatedAt, p.ID.UUID, p.UserID.UUID)
	if err != nil {
		return false, fmt.Errorf("update project: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id domain.ProjectID, owner domain.UserID) (bool, error) {
	tag, err := r.db.Exec(ctx, deleteProjectSQL, id.UUID, owner.UUID)
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	if err := row.Scan(&p.ID.UUID, &p.UserID.UUID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Ensure ProjectRepository implements ports.ProjectRepository.
var _ ports.ProjectRepository = (*ProjectRepository)(nil)
