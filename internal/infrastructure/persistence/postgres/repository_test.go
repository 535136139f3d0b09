package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/personaltask/taskmanager/internal/domain"
	domerrors "github.com/personaltask/taskmanager/internal/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uuidArg matches a uuid argument whether the driver sees it as uuid.UUID or text.
type uuidArg struct{ id uuid.UUID }

func (a uuidArg) Match(v interface{}) bool {
	switch x := v.(type) {
	case uuid.UUID:
		return x == a.id
	case string:
		return x == a.id.String()
	default:
		return false
	}
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestUserRepositoryCreateDuplicate(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()
	user := &domain.User{ID: domain.NewUserID(uuid.New()), Email: "a@example.com", PasswordHash: "h", CreatedAt: now, UpdatedAt: now}

	mock.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
		WithArgs(uuidArg{user.ID.UUID}, "a@example.com", "", "h", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	err := repo.Create(context.Background(), user)
	assert.ErrorIs(t, err, domerrors.ErrUserExists)
}

func TestUserRepositoryCreateWrapsOtherErrors(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	boom := errors.New("connection reset")

	mock.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(boom)

	err := repo.Create(context.Background(), &domain.User{ID: domain.NewUserID(uuid.New())})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domerrors.ErrUserExists)
}

func TestUserRepositoryGetByEmailMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(getUserByEmailSQL)).
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	u, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestProjectRepositoryScopesByOwner(t *testing.T) {
	mock := newMock(t)
	repo := NewProjectRepository(mock)
	id := domain.NewProjectID(uuid.New())
	owner := domain.NewUserID(uuid.New())

	mock.ExpectQuery(regexp.QuoteMeta(getProjectSQL)).
		WithArgs(uuidArg{id.UUID}, uuidArg{owner.UUID}).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta(deleteProjectSQL)).
		WithArgs(uuidArg{id.UUID}, uuidArg{owner.UUID}).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	p, err := repo.GetByID(context.Background(), id, owner)
	require.NoError(t, err)
	assert.Nil(t, p)

	deleted, err := repo.Delete(context.Background(), id, owner)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestProjectRepositoryUpdate(t *testing.T) {
	mock := newMock(t)
	repo := NewProjectRepository(mock)
	p := &domain.Project{
		ID:        domain.NewProjectID(uuid.New()),
		UserID:    domain.NewUserID(uuid.New()),
		Name:      "Home",
		UpdatedAt: time.Now(),
	}

	mock.ExpectExec(regexp.QuoteMeta(updateProjectSQL)).
		WithArgs("Home", "", pgxmock.AnyArg(), uuidArg{p.ID.UUID}, uuidArg{p.UserID.UUID}).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	ok, err := repo.Update(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestProjectRepositoryListEmpty(t *testing.T) {
	mock := newMock(t)
	repo := NewProjectRepository(mock)
	owner := domain.NewUserID(uuid.New())

	mock.ExpectQuery(regexp.QuoteMeta(listProjectsSQL)).
		WithArgs(uuidArg{owner.UUID}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "description", "created_at", "updated_at"}))

	list, err := repo.ListByOwner(context.Background(), owner)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestTaskRepositoryCreate(t *testing.T) {
	mock := newMock(t)
	repo := NewTaskRepository(mock)
	now := time.Now()
	task := &domain.Task{
		ID:        domain.NewTaskID(uuid.New()),
		ProjectID: domain.NewProjectID(uuid.New()),
		UserID:    domain.NewUserID(uuid.New()),
		Title:     "Write report",
		Status:    domain.TaskStatusPending,
		Priority:  domain.PriorityHigh,
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec(regexp.QuoteMeta(insertTaskSQL)).
		WithArgs(uuidArg{task.ID.UUID}, uuidArg{task.ProjectID.UUID}, uuidArg{task.UserID.UUID},
			"Write report", "", "pending", 3, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), task))
}

func TestTaskRepositoryUpdateOtherOwner(t *testing.T) {
	mock := newMock(t)
	repo := NewTaskRepository(mock)
	task := &domain.Task{
		ID:        domain.NewTaskID(uuid.New()),
		ProjectID: domain.NewProjectID(uuid.New()),
		UserID:    domain.NewUserID(uuid.New()),
		Title:     "x",
		Status:    domain.TaskStatusCompleted,
		Priority:  domain.PriorityLow,
	}

	mock.ExpectExec(regexp.QuoteMeta(updateTaskSQL)).
		WithArgs(uuidArg{task.ProjectID.UUID}, "x", "", "completed", 1, pgxmock.AnyArg(), pgxmock.AnyArg(),
			uuidArg{task.ID.UUID}, uuidArg{task.UserID.UUID}).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	ok, err := repo.Update(context.Background(), task)
	require.NoError(t, err)
	assert.False(t, ok)
}
