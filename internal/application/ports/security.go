package ports

import (
	"time"

	"github.com/personaltask/taskmanager/internal/domain"
)

// PasswordHasher hashes and verifies passwords (bcrypt or Argon2id).
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify returns false, nil on mismatch. An error means the stored hash is unusable.
	Verify(password, hash string) (bool, error)
}

// TokenIssuer signs identity tokens (HS256).
type TokenIssuer interface {
	Issue(userID domain.UserID) (token string, expiresAt time.Time, err error)
}

// TokenVerifier checks signature and expiry and returns the proven identity.
// Errors are domerrors.ErrTokenMalformed, ErrTokenSignatureInvalid or ErrTokenExpired.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}
