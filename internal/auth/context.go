package auth

import (
	"context"

	apperrors "fintrack/internal/errors"
)

// Identity is the resolved caller attached to a request context after the
// bearer token has been verified once at the gateway.
type Identity struct {
	UserID string
	Email  string
}

type contextKey struct{}

// WithIdentity returns a context carrying the caller identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the caller identity attached to ctx, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// RequireIdentity returns the caller identity or ErrUnauthenticated when the
// request carried no valid bearer token.
func RequireIdentity(ctx context.Context) (Identity, error) {
	id, ok := FromContext(ctx)
	if !ok {
		return Identity{}, apperrors.ErrUnauthenticated
	}
	return id, nil
}
