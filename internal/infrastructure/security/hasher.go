package security

import (
	"fmt"
	"strings"

	"github.com/personaltask/taskmanager/internal/application/ports"
)

const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

var (
	_ ports.PasswordHasher = (*BcryptHasher)(nil)
	_ ports.PasswordHasher = (*Argon2Hasher)(nil)
)

// NewPasswordHasher selects the hasher named by algorithm.
func NewPasswordHasher(algorithm string, bcryptCost int) (ports.PasswordHasher, error) {
	switch strings.ToLower(algorithm) {
	case "", AlgorithmBcrypt:
		return NewBcryptHasher(bcryptCost), nil
	case AlgorithmArgon2id:
		return NewArgon2Hasher(DefaultArgon2Params()), nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", algorithm)
	}
}
