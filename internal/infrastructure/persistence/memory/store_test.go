package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/personaltask/taskmanager/internal/domain"
	domerrors "github.com/personaltask/taskmanager/internal/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserEmailUnique(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()

	require.NoError(t, users.Create(ctx, &domain.User{ID: domain.NewUserID(uuid.New()), Email: "a@example.com"}))
	err := users.Create(ctx, &domain.User{ID: domain.NewUserID(uuid.New()), Email: "a@example.com"})
	assert.ErrorIs(t, err, domerrors.ErrUserExists)

	// Emails are compared as stored.
	require.NoError(t, users.Create(ctx, &domain.User{ID: domain.NewUserID(uuid.New()), Email: "A@example.com"}))

	u, err := users.GetByEmail(ctx, "missing@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestProjectsScopedByOwner(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	projects := store.Projects()
	alice := domain.NewUserID(uuid.New())
	bob := domain.NewUserID(uuid.New())

	p := &domain.Project{ID: domain.NewProjectID(uuid.New()), UserID: alice, Name: "Home"}
	require.NoError(t, projects.Create(ctx, p))

	got, err := projects.GetByID(ctx, p.ID, bob)
	require.NoError(t, err)
	assert.Nil(t, got)

	ok, err := projects.Update(ctx, &domain.Project{ID: p.ID, UserID: bob, Name: "stolen"})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = projects.Delete(ctx, p.ID, bob)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err = projects.GetByID(ctx, p.ID, alice)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Home", got.Name)
}

func TestProjectDeleteCascadesToTasks(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	owner := domain.NewUserID(uuid.New())
	p := &domain.Project{ID: domain.NewProjectID(uuid.New()), UserID: owner, Name: "Work"}
	keep := &domain.Project{ID: domain.NewProjectID(uuid.New()), UserID: owner, Name: "Keep"}
	require.NoError(t, store.Projects().Create(ctx, p))
	require.NoError(t, store.Projects().Create(ctx, keep))

	require.NoError(t, store.Tasks().Create(ctx, &domain.Task{ID: domain.NewTaskID(uuid.New()), ProjectID: p.ID, UserID: owner}))
	require.NoError(t, store.Tasks().Create(ctx, &domain.Task{ID: domain.NewTaskID(uuid.New()), ProjectID: keep.ID, UserID: owner}))

	ok, err := store.Projects().Delete(ctx, p.ID, owner)
	require.NoError(t, err)
	assert.True(t, ok)

	tasks, err := store.Tasks().ListByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, keep.ID, tasks[0].ProjectID)
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	tasks := NewStore().Tasks()
	owner := domain.NewUserID(uuid.New())
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, tasks.Create(ctx, &domain.Task{
			ID:        domain.NewTaskID(uuid.New()),
			UserID:    owner,
			Title:     string(rune('a' + i)),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, tasks.Create(ctx, &domain.Task{ID: domain.NewTaskID(uuid.New()), UserID: domain.NewUserID(uuid.New())}))

	list, err := tasks.ListByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].Title)
	assert.Equal(t, "a", list[2].Title)
}
