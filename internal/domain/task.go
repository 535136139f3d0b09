package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskID is a value object for task identity.
type TaskID struct{ uuid.UUID }

// NewTaskID creates a new TaskID from uuid.
func NewTaskID(id uuid.UUID) TaskID { return TaskID{UUID: id} }

// ParseTaskID parses the canonical string form.
func ParseTaskID(s string) (TaskID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TaskID{}, err
	}
	return NewTaskID(id), nil
}

// String returns the canonical string form.
func (t TaskID) String() string { return t.UUID.String() }

// TaskStatus is one of a small closed set.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// ParseTaskStatus returns the status for s. An empty string means pending.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	switch TaskStatus(s) {
	case "":
		return TaskStatusPending, true
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return TaskStatus(s), true
	default:
		return "", false
	}
}

// Priority: 1 = low, 2 = medium, 3 = high.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

// Valid reports whether p is within the supported range.
func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// Task belongs to one project and records the user that created it.
type Task struct {
	ID          TaskID
	ProjectID   ProjectID
	UserID      UserID
	Title       string
	Description string
	Status      TaskStatus
	Priority    Priority
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnedBy reports whether the task belongs to the given user.
func (t *Task) OwnedBy(userID UserID) bool {
	return t != nil && t.UserID == userID
}
