package middleware

import (
	"context"

	"github.com/personaltask/taskmanager/internal/domain"
)

type contextKey string

const identityContextKey contextKey = "identity"

// WithIdentity injects the verified identity into the context.
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext returns the identity set by Gate, if any.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(domain.Identity)
	return identity, ok
}
