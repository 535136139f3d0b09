package auth

import (
	"bytes"
	"errors"
	"fmt"
	"os"
)

// LoadSigningSecret returns the HMAC secret from the inline value, or from the
// file at path when the inline value is empty. Surrounding whitespace in the
// file is ignored.
func LoadSigningSecret(inline, path string) ([]byte, error) {
	if inline != "" {
		return []byte(inline), nil
	}
	if path == "" {
		return nil, errors.New("JWT_SECRET or JWT_SECRET_FILE is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read signing secret: %w", err)
	}
	secret := bytes.TrimSpace(raw)
	if len(secret) == 0 {
		return nil, fmt.Errorf("signing secret file %s is empty", path)
	}
	return secret, nil
}
