package task

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/personaltask/taskmanager/internal/domain"
	domerrors "github.com/personaltask/taskmanager/internal/domain/errors"
	"github.com/personaltask/taskmanager/internal/infrastructure/persistence/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store   *memory.Store
	alice   domain.UserID
	bob     domain.UserID
	project *domain.Project
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: memory.NewStore(),
		alice: domain.NewUserID(uuid.New()),
		bob:   domain.NewUserID(uuid.New()),
	}
	f.project = &domain.Project{ID: domain.NewProjectID(uuid.New()), UserID: f.alice, Name: "Home"}
	require.NoError(t, f.store.Projects().Create(context.Background(), f.project))
	return f
}

func (f *fixture) create(t *testing.T, title string) *domain.Task {
	t.Helper()
	task, err := NewCreateTask(f.store.Tasks(), f.store.Projects()).Execute(context.Background(), CreateTaskInput{
		Owner: f.alice, ProjectID: f.project.ID.String(), Title: title,
	})
	require.NoError(t, err)
	return task
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestCreateTaskDefaults(t *testing.T) {
	f := newFixture(t)
	task := f.create(t, "Water plants")

	assert.Equal(t, f.alice, task.UserID)
	assert.Equal(t, f.project.ID, task.ProjectID)
	assert.Equal(t, domain.TaskStatusPending, task.Status)
	assert.Equal(t, domain.PriorityLow, task.Priority)
	assert.Nil(t, task.DueDate)
}

func TestCreateTaskValidation(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateTask(f.store.Tasks(), f.store.Projects())
	pid := f.project.ID.String()

	cases := map[string]CreateTaskInput{
		"Title and Project ID are required": {Owner: f.alice, ProjectID: pid},
		"Invalid Project ID":                {Owner: f.alice, ProjectID: "7", Title: "x"},
		"Invalid status":                    {Owner: f.alice, ProjectID: pid, Title: "x", Status: "done"},
		"Invalid priority":                  {Owner: f.alice, ProjectID: pid, Title: "x", Priority: intPtr(5)},
		"Invalid due date format":           {Owner: f.alice, ProjectID: pid, Title: "x", DueDate: "someday"},
	}
	for want, in := range cases {
		_, err := uc.Execute(context.Background(), in)
		ve, ok := domerrors.AsValidation(err)
		if assert.True(t, ok, want) {
			assert.Equal(t, want, ve.Message)
		}
	}
}

func TestCreateTaskRequiresOwnedProject(t *testing.T) {
	f := newFixture(t)
	_, err := NewCreateTask(f.store.Tasks(), f.store.Projects()).Execute(context.Background(), CreateTaskInput{
		Owner: f.bob, ProjectID: f.project.ID.String(), Title: "sneaky",
	})
	assert.ErrorIs(t, err, domerrors.ErrProjectNotFound)
}

func TestCreateTaskParsesDueDate(t *testing.T) {
	f := newFixture(t)
	task, err := NewCreateTask(f.store.Tasks(), f.store.Projects()).Execute(context.Background(), CreateTaskInput{
		Owner: f.alice, ProjectID: f.project.ID.String(), Title: "x", DueDate: "March 3rd, 2025", Priority: intPtr(3),
	})
	require.NoError(t, err)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, "2025-03-03", task.DueDate.Format("2006-01-02"))
	assert.Equal(t, domain.PriorityHigh, task.Priority)
}

func TestUpdateTask(t *testing.T) {
	f := newFixture(t)
	task := f.create(t, "Draft")
	uc := NewUpdateTask(f.store.Tasks(), f.store.Projects())
	ctx := context.Background()

	updated, err := uc.Execute(ctx, UpdateTaskInput{
		Owner: f.alice, ID: task.ID.String(), ProjectID: f.project.ID.String(), Title: "Final",
		Status: strPtr("completed"), DueDate: strPtr("2025-06-01"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Title)
	assert.Equal(t, domain.TaskStatusCompleted, updated.Status)
	require.NotNil(t, updated.DueDate)

	cleared, err := uc.Execute(ctx, UpdateTaskInput{
		Owner: f.alice, ID: task.ID.String(), ProjectID: f.project.ID.String(), Title: "Final", DueDate: strPtr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, cleared.DueDate)
	assert.Equal(t, domain.TaskStatusCompleted, cleared.Status)
}

func TestUpdateTaskEmptyStatusKeepsCurrent(t *testing.T) {
	f := newFixture(t)
	task := f.create(t, "Draft")
	uc := NewUpdateTask(f.store.Tasks(), f.store.Projects())
	ctx := context.Background()

	_, err := uc.Execute(ctx, UpdateTaskInput{
		Owner: f.alice, ID: task.ID.String(), ProjectID: f.project.ID.String(), Title: "Draft",
		Status: strPtr("in-progress"),
	})
	require.NoError(t, err)

	kept, err := uc.Execute(ctx, UpdateTaskInput{
		Owner: f.alice, ID: task.ID.String(), ProjectID: f.project.ID.String(), Title: "Draft",
		Status: strPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusInProgress, kept.Status)
}

func TestUpdateTaskOwnership(t *testing.T) {
	f := newFixture(t)
	task := f.create(t, "Draft")
	uc := NewUpdateTask(f.store.Tasks(), f.store.Projects())
	ctx := context.Background()

	_, err := uc.Execute(ctx, UpdateTaskInput{Owner: f.bob, ID: task.ID.String(), ProjectID: f.project.ID.String(), Title: "x"})
	assert.ErrorIs(t, err, domerrors.ErrTaskNotFound)

	_, err = uc.Execute(ctx, UpdateTaskInput{Owner: f.alice, ID: "nope", ProjectID: f.project.ID.String(), Title: "x"})
	ve, ok := domerrors.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid Task ID", ve.Message)

	// Moving into a project the caller does not own is refused.
	bobs := &domain.Project{ID: domain.NewProjectID(uuid.New()), UserID: f.bob, Name: "Bob"}
	require.NoError(t, f.store.Projects().Create(ctx, bobs))
	_, err = uc.Execute(ctx, UpdateTaskInput{Owner: f.alice, ID: task.ID.String(), ProjectID: bobs.ID.String(), Title: "x"})
	assert.ErrorIs(t, err, domerrors.ErrProjectNotFound)
}

func TestDeleteTask(t *testing.T) {
	f := newFixture(t)
	task := f.create(t, "Draft")
	uc := NewDeleteTask(f.store.Tasks())
	ctx := context.Background()

	assert.ErrorIs(t, uc.Execute(ctx, f.bob, task.ID.String()), domerrors.ErrTaskNotFound)
	require.NoError(t, uc.Execute(ctx, f.alice, task.ID.String()))
	assert.ErrorIs(t, uc.Execute(ctx, f.alice, task.ID.String()), domerrors.ErrTaskNotFound)

	list, err := NewListTasks(f.store.Tasks()).Execute(ctx, f.alice)
	require.NoError(t, err)
	assert.Empty(t, list)
}
