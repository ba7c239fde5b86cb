package authz

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the verified caller identity the authorization layer trusts.
// It is produced by an upstream authenticator (JWT middleware, session
// lookup); this package performs no credential checks of its own.
// A zero TenantID marks a global user operating outside any tenant.
type Identity struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
}

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithIdentity adds a verified identity to the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// IdentityFromContext retrieves the verified identity from the context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
