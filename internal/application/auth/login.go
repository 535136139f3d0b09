package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/personaltask/taskmanager/internal/application/ports"
	"github.com/personaltask/taskmanager/internal/domain"
	domerrors "github.com/personaltask/taskmanager/internal/domain/errors"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// LockedError carries the remaining cooldown of a locked account.
type LockedError struct {
	RetryAfterSeconds int
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("%s; retry after %ds", domerrors.ErrAccountLocked, e.RetryAfterSeconds)
}

func (e *LockedError) Unwrap() error { return domerrors.ErrAccountLocked }

type Login struct {
	users   ports.UserRepository
	hasher  ports.PasswordHasher
	issuer  ports.TokenIssuer
	lockout ports.LoginLockoutStore
}

// NewLogin builds the use case. lockout may be nil to disable lockout.
func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, lockout ports.LoginLockoutStore) *Login {
	return &Login{
		users:   users,
		hasher:  hasher,
		issuer:  issuer,
		lockout: lockout,
	}
}

// Execute returns ErrUserNotFound for an unknown email and ErrInvalidCredentials
// for a wrong password.
func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, domerrors.NewValidationError("email", "Email and password are required")
	}
	if uc.lockout != nil {
		if locked, retry := uc.lockout.IsLocked(ctx, email); locked {
			return nil, &LockedError{RetryAfterSeconds: retry}
		}
	}
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	// No stored password can be longer than MaxPasswordBytes, so a longer one is a mismatch.
	ok := false
	if !domain.PasswordTooLong(input.Password) {
		ok, err = uc.hasher.Verify(input.Password, user.PasswordHash)
		if err != nil {
			return nil, fmt.Errorf("verify password for user %s: %w", user.ID, err)
		}
	}
	if !ok {
		if uc.lockout != nil {
			uc.lockout.RecordFailure(ctx, email)
		}
		return nil, domerrors.ErrInvalidCredentials
	}
	if uc.lockout != nil {
		uc.lockout.RecordSuccess(ctx, email)
	}
	token, expiresAt, err := uc.issuer.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}
