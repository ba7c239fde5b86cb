package grants

import (
	"time"

	"github.com/google/uuid"

	"github.com/gameguild-gg/guildkit/pkg/permissions"
)

// TenantGrant is the tenant-wide authorization floor for one user: the
// broadest scope, applying to every resource of every kind in the tenant.
// Exactly one grant exists per (user, tenant) pair.
type TenantGrant struct {
	UserID    uuid.UUID
	TenantID  uuid.UUID
	Flags     permissions.Flag
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContentTypeGrant scopes permissions to every instance of one entity kind
// within a tenant. ContentType is the logical kind name ("Product",
// "Comment"), not a Go type. Exactly one grant exists per
// (user, tenant, content type) triple.
type ContentTypeGrant struct {
	UserID      uuid.UUID
	TenantID    uuid.UUID
	ContentType string
	Flags       permissions.Flag
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ResourceGrant scopes permissions to one specific resource instance and is
// the only grant kind that can expire. A nil ExpiresAt never expires.
// Exactly one grant exists per (user, tenant, resource) triple; each
// resource kind keeps its grants in its own store.
type ResourceGrant struct {
	UserID     uuid.UUID
	TenantID   uuid.UUID
	ResourceID uuid.UUID
	Flags      permissions.Flag
	ExpiresAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Valid reports whether the grant is usable at the given instant. An
// expired grant is indistinguishable from a missing one: it stays in the
// store but never contributes flags.
func (g ResourceGrant) Valid(now time.Time) bool {
	return g.ExpiresAt == nil || g.ExpiresAt.After(now)
}
