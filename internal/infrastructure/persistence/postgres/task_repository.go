package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/personaltask/taskmanager/internal/application/ports"
	"github.com/personaltask/taskmanager/internal/domain"
)

const (
	insertTaskSQL = `INSERT INTO tasks (id, project_id, user_id, title, description, status, priority, due_date, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	selectTaskColumns = `SELECT id, project_id, user_id, title, COALESCE(description, ''), status, priority, due_date, created_at, updated_at FROM tasks`
	getTaskSQL        = selectTaskColumns + ` WHERE id = $1 AND user_id = $2`
	listTasksSQL      = selectTaskColumns + ` WHERE user_id = $1 ORDER BY created_at DESC`
	updateTaskSQL     = `UPDATE tasks SET project_id = $1, title = $2, description = $3, status = $4, priority = $5, due_date = $6, updated_at = $7
WHERE id = $8 AND user_id = $9`
	deleteTaskSQL = `DELETE FROM tasks WHERE id = $1 AND user_id = $2`
)

type TaskRepository struct {
	db DBTX
}

func NewTaskRepository(db DBTX) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	_, err := r.db.Exec(ctx, insertTaskSQL,
		t.ID.UUID, t.ProjectID.UUID, t.UserID.UUID, t.Title, t.Description,
		string(t.Status), int(t.Priority), t.DueDate, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id domain.TaskID, owner domain.UserID) (*domain.Task, error) {
	t, err := scanTask(r.db.QueryRow(ctx, getTaskSQL, id.UUID, owner.UUID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select task: %w", err)
	}
	return t, nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, owner domain.UserID) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx, listTasksSQL, owner.UUID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	list := make([]*domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return list, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) (bool, error) {
	tag, err := r.db.Exec(ctx, updateTaskSQL,
		t.ProjectID.UUID, t.Title, t.Description, string(t.Status), int(t.Priority), t.DueDate, t.UpdatedAt,
		t.ID.UUID, t.UserID.UUID)
	if err != nil {
		return false, fmt.Errorf("update task: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id domain.TaskID, owner domain.UserID) (bool, error) {
	tag, err := r.db.Exec(ctx, deleteTaskSQL, id.UUID, owner.UUID)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		t        domain.Task
		status   string
		priority int
		due      *time.Time
	)
	if err := row.Scan(&t.ID.UUID, &t.ProjectID.UUID, &t.UserID.UUID, &t.Title, &t.Description,
		&status, &priority, &due, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Status = domain.TaskStatus(status)
	t.Priority = domain.Priority(priority)
	t.DueDate = due
	return &t, nil
}

// Ensure TaskRepository implements ports.TaskRepository.
var _ ports.TaskRepository = (*TaskRepository)(nil)
