package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserID is a value object for user identity.
type UserID struct{ uuid.UUID }

// NewUserID creates a new UserID from uuid.
func NewUserID(id uuid.UUID) UserID { return UserID{UUID: id} }

// ParseUserID parses the canonical string form.
func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, err
	}
	return NewUserID(id), nil
}

// String returns the canonical string form.
func (u UserID) String() string { return u.UUID.String() }

// MaxPasswordBytes is the longest password, in bytes, bcrypt can hash.
const MaxPasswordBytes = 72

// PasswordTooLong reports whether password exceeds MaxPasswordBytes.
func PasswordTooLong(password string) bool { return len(password) > MaxPasswordBytes }

// User owns projects and tasks. Email is unique and compared as stored.
type User struct {
	ID           UserID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is what a verified token proves about the caller. UserID is the only
// field handlers may use for authorization decisions.
type Identity struct {
	UserID    UserID
	IssuedAt  time.Time
	ExpiresAt time.Time
}
