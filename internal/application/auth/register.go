package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/personaltask/taskmanager/internal/application/ports"
	"github.com/personaltask/taskmanager/internal/domain"
	domerrors "github.com/personaltask/taskmanager/internal/domain/errors"
)

type RegisterUserInput struct {
	Email    string
	Password string
	Name     string
}

type RegisterUserResult struct {
	User *domain.User
}

type RegisterUser struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	now    func() time.Time
}

func NewRegisterUser(users ports.UserRepository, hasher ports.PasswordHasher) *RegisterUser {
	return &RegisterUser{users: users, hasher: hasher, now: time.Now}
}

func (uc *RegisterUser) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserResult, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, domerrors.NewValidationError("email", "Email and password are required")
	}
	if domain.PasswordTooLong(input.Password) {
		return nil, domerrors.NewValidationError("password", "Password is too long")
	}
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrUserExists
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	user := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// Create also reports ErrUserExists when a concurrent registration wins the race.
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return &RegisterUserResult{User: user}, nil
}
