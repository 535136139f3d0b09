package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/personaltask/taskmanager/internal/application/ports"
	"github.com/personaltask/taskmanager/internal/domain"
	domerrors "github.com/personaltask/taskmanager/internal/domain/errors"
)

// DefaultTokenTTL is the lifetime of an identity token.
const DefaultTokenTTL = 24 * time.Hour

var (
	_ ports.TokenIssuer   = (*TokenIssuer)(nil)
	_ ports.TokenVerifier = (*TokenIssuer)(nil)
)

// TokenIssuer implements ports.TokenIssuer and ports.TokenVerifier with HS256.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type identityClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// Option configures a TokenIssuer.
type Option func(*TokenIssuer)

// WithClock replaces time.Now for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(t *TokenIssuer) { t.now = now }
}

// NewTokenIssuer returns an issuer signing with secret. ttl <= 0 selects DefaultTokenTTL.
func NewTokenIssuer(secret []byte, ttl time.Duration, opts ...Option) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("token signing secret is empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	t := &TokenIssuer{
		secret: append([]byte(nil), secret...),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// TTL returns the configured token lifetime.
func (t *TokenIssuer) TTL() time.Duration { return t.ttl }

func (t *TokenIssuer) Issue(userID domain.UserID) (string, time.Time, error) {
	return t.IssueWithTTL(userID, t.ttl)
}

// IssueWithTTL signs a token for userID that expires after ttl.
func (t *TokenIssuer) IssueWithTTL(userID domain.UserID, ttl time.Duration) (string, time.Time, error) {
	now := t.now()
	expiresAt := now.Add(ttl)
	claims := identityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID.String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt.Truncate(time.Second), nil
}

func (t *TokenIssuer) Verify(tokenString string) (domain.Identity, error) {
	claims := &identityClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return domain.Identity{}, classifyTokenError(err)
	}
	userID, err := domain.ParseUserID(claims.UserID)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: userId claim: %v", domerrors.ErrTokenMalformed, err)
	}
	identity := domain.Identity{UserID: userID}
	if claims.IssuedAt != nil {
		identity.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", domerrors.ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", domerrors.ErrTokenSignatureInvalid, err)
	default:
		return fmt.Errorf("%w: %v", domerrors.ErrTokenMalformed, err)
	}
}
