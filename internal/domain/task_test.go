package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParseTaskStatus(t *testing.T) {
	cases := map[string]struct {
		want TaskStatus
		ok   bool
	}{
		"":            {TaskStatusPending, true},
		"pending":     {TaskStatusPending, true},
		"in-progress": {TaskStatusInProgress, true},
		"completed":   {TaskStatusCompleted, true},
		"done":        {"", false},
		"Pending":     {"", false},
	}
	for in, tc := range cases {
		got, ok := ParseTaskStatus(in)
		assert.Equal(t, tc.ok, ok, in)
		assert.Equal(t, tc.want, got, in)
	}
}

func TestPriorityValid(t *testing.T) {
	assert.False(t, Priority(0).Valid())
	assert.True(t, PriorityLow.Valid())
	assert.True(t, PriorityHigh.Valid())
	assert.False(t, Priority(4).Valid())
}

func TestOwnedBy(t *testing.T) {
	owner := NewUserID(uuid.New())
	other := NewUserID(uuid.New())

	p := &Project{ID: NewProjectID(uuid.New()), UserID: owner}
	assert.True(t, p.OwnedBy(owner))
	assert.False(t, p.OwnedBy(other))

	var missing *Task
	assert.False(t, missing.OwnedBy(owner))
}
