package auth

import (
	"context"
	"strings"
	"time"

	"github.com/personaltask/taskmanager/internal/application/ports"
	"github.com/personaltask/taskmanager/internal/domain"
	domerrors "github.com/personaltask/taskmanager/internal/domain/errors"
)

// UpdateProfileInput changes the caller's own account. Empty fields are left as they are.
type UpdateProfileInput struct {
	UserID   domain.UserID
	Name     string
	Password string
}

type UpdateProfile struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	now    func() time.Time
}

func NewUpdateProfile(users ports.UserRepository, hasher ports.PasswordHasher) *UpdateProfile {
	return &UpdateProfile{users: users, hasher: hasher, now: time.Now}
}

func (uc *UpdateProfile) Execute(ctx context.Context, input UpdateProfileInput) (*domain.User, error) {
	if domain.PasswordTooLong(input.Password) {
		return nil, domerrors.NewValidationError("password", "Password is too long")
	}
	user, err := uc.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = name
	}
	if input.Password != "" {
		hash, err := uc.hasher.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = uc.now().UTC()
	ok, err := uc.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domerrors.ErrUserNotFound
	}
	return user, nil
}
