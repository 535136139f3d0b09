package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProjectID is a value object for project identity.
type ProjectID struct{ uuid.UUID }

// NewProjectID creates a new ProjectID from uuid.
func NewProjectID(id uuid.UUID) ProjectID { return ProjectID{UUID: id} }

// ParseProjectID parses the canonical string form.
func ParseProjectID(s string) (ProjectID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ProjectID{}, err
	}
	return NewProjectID(id), nil
}

// String returns the canonical string form.
func (p ProjectID) String() string { return p.UUID.String() }

// Project belongs to exactly one user.
type Project struct {
	ID          ProjectID
	UserID      UserID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnedBy reports whether the project belongs to the given user.
func (p *Project) OwnedBy(userID UserID) bool {
	return p != nil && p.UserID == userID
}
