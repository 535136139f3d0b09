package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testHashers() map[string]interface {
	Hash(string) (string, error)
	Verify(string, string) (bool, error)
} {
	return map[string]interface {
		Hash(string) (string, error)
		Verify(string, string) (bool, error)
	}{
		"bcrypt":   NewBcryptHasher(bcrypt.MinCost),
		"argon2id": NewArgon2Hasher(Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}),
	}
}

func TestHasherRoundTrip(t *testing.T) {
	passwords := []string{"correct horse battery staple", "pässwörd-日本語-🔑", ""}
	for name, h := range testHashers() {
		for _, pw := range passwords {
			digest, err := h.Hash(pw)
			require.NoError(t, err, name)

			ok, err := h.Verify(pw, digest)
			require.NoError(t, err, name)
			assert.True(t, ok, "%s: password %q should verify", name, pw)

			ok, err = h.Verify(pw+"x", digest)
			require.NoError(t, err, name)
			assert.False(t, ok, "%s: altered password should not verify", name)
		}
	}
}

func TestVerifyEmptyPasswordAgainstDigest(t *testing.T) {
	for name, h := range testHashers() {
		digest, err := h.Hash("secret1")
		require.NoError(t, err, name)

		ok, err := h.Verify("", digest)
		require.NoError(t, err, name)
		assert.False(t, ok, "%s: empty password must not verify", name)
	}
}

func TestHashIsSalted(t *testing.T) {
	for name, h := range testHashers() {
		a, err := h.Hash("same input")
		require.NoError(t, err)
		b, err := h.Hash("same input")
		require.NoError(t, err)
		assert.NotEqual(t, a, b, name)
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	for name, h := range testHashers() {
		ok, err := h.Verify("anything", "not-a-hash")
		assert.False(t, ok, name)
		assert.ErrorIs(t, err, ErrMalformedHash, name)
	}
}

func TestBcryptRejectsLongPassword(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	_, err := h.Hash(strings.Repeat("a", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	_, err = h.Hash(strings.Repeat("a", MaxPasswordBytes))
	assert.NoError(t, err)
}

func TestBcryptCostClamped(t *testing.T) {
	assert.Equal(t, bcrypt.MinCost, NewBcryptHasher(1).cost)
	assert.Equal(t, DefaultBcryptCost, NewBcryptHasher(DefaultBcryptCost).cost)
}

func TestNewPasswordHasher(t *testing.T) {
	h, err := NewPasswordHasher("", 4)
	require.NoError(t, err)
	assert.IsType(t, &BcryptHasher{}, h)

	h, err = NewPasswordHasher("Argon2id", 4)
	require.NoError(t, err)
	assert.IsType(t, &Argon2Hasher{}, h)

	_, err = NewPasswordHasher("md5", 4)
	assert.Error(t, err)
}
