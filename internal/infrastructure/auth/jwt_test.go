package auth

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/personaltask/taskmanager/internal/domain"
	domerrors "github.com/personaltask/taskmanager/internal/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestIssuer(t *testing.T, secret string, clock *fakeClock) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer([]byte(secret), time.Hour, WithClock(clock.Now))
	require.NoError(t, err)
	return issuer
}

func TestIssueAndVerify(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	issuer := newTestIssuer(t, "test-secret", clock)
	userID := domain.NewUserID(uuid.New())

	token, expiresAt, err := issuer.Issue(userID)
	require.NoError(t, err)
	assert.True(t, clock.t.Add(time.Hour).Equal(expiresAt))

	identity, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, identity.UserID)
	assert.True(t, identity.ExpiresAt.Equal(expiresAt))
	assert.True(t, identity.IssuedAt.Equal(clock.t))
}

func TestVerifyExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	issuer := newTestIssuer(t, "test-secret", clock)

	token, _, err := issuer.Issue(domain.NewUserID(uuid.New()))
	require.NoError(t, err)

	clock.Advance(59 * time.Minute)
	_, err = issuer.Verify(token)
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, domerrors.ErrTokenExpired)
}

func TestVerifyTamperedSignature(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	issuer := newTestIssuer(t, "test-secret", clock)

	token, _, err := issuer.Issue(domain.NewUserID(uuid.New()))
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = issuer.Verify(tampered)
	assert.ErrorIs(t, err, domerrors.ErrTokenSignatureInvalid)
}

func TestVerifyWrongSecret(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	other := newTestIssuer(t, "other-secret", clock)
	issuer := newTestIssuer(t, "test-secret", clock)

	token, _, err := other.Issue(domain.NewUserID(uuid.New()))
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, domerrors.ErrTokenSignatureInvalid)
}

func TestVerifyMalformed(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	issuer := newTestIssuer(t, "test-secret", clock)

	for _, token := range []string{"", "abc", "a.b.c", "Bearer xyz"} {
		_, err := issuer.Verify(token)
		assert.ErrorIs(t, err, domerrors.ErrTokenMalformed, token)
	}
}

func TestVerifyRejectsNonUUIDSubject(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	issuer := newTestIssuer(t, "test-secret", clock)

	claims := identityClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour))},
		UserID:           "not-a-uuid",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, domerrors.ErrTokenMalformed)
}

func TestVerifyRequiresExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	issuer := newTestIssuer(t, "test-secret", clock)

	claims := identityClaims{UserID: uuid.NewString()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, domerrors.ErrTokenMalformed)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	issuer := newTestIssuer(t, "test-secret", clock)

	claims := identityClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour))},
		UserID:           uuid.NewString(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.Error(t, err)
}

func TestNewTokenIssuerRequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer(nil, time.Hour)
	assert.Error(t, err)

	issuer, err := NewTokenIssuer([]byte("s"), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenTTL, issuer.TTL())
}

func TestLoadSigningSecret(t *testing.T) {
	secret, err := LoadSigningSecret("inline", "/does/not/matter")
	require.NoError(t, err)
	assert.Equal(t, []byte("inline"), secret)

	path := filepath.Join(t.TempDir(), "secret")
	require.NoError(t, os.WriteFile(path, []byte("  from-file\n"), 0o600))
	secret, err = LoadSigningSecret("", path)
	require.NoError(t, err)
	assert.Equal(t, []byte("from-file"), secret)

	_, err = LoadSigningSecret("", "")
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(empty, []byte("\n"), 0o600))
	_, err = LoadSigningSecret("", empty)
	assert.Error(t, err)
}
