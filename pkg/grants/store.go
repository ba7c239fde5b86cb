package grants

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gameguild-gg/guildkit/pkg/permissions"
)

// TenantStore persists tenant-wide grants. Grant is an idempotent upsert:
// it OR-combines flags into the existing row or inserts a new one, so
// concurrent writers need no coordination beyond the store's uniqueness
// constraint on (user, tenant).
type TenantStore interface {
	// Get returns the grant for (userID, tenantID), or ErrGrantNotFound.
	Get(ctx context.Context, userID, tenantID uuid.UUID) (*TenantGrant, error)

	// Grant adds flags to the user's tenant-wide grant, creating it if absent.
	Grant(ctx context.Context, userID, tenantID uuid.UUID, flags permissions.Flag) error

	// Revoke clears the given flags. Revoking flags the grant never held is
	// a no-op; a grant left with no flags is removed entirely.
	Revoke(ctx context.Context, userID, tenantID uuid.UUID, flags permissions.Flag) error

	// Delete removes the grant regardless of its flags.
	Delete(ctx context.Context, userID, tenantID uuid.UUID) error
}

// ContentTypeStore persists grants scoped to one entity kind across all of
// its instances. Same upsert semantics as TenantStore, keyed by
// (user, tenant, content type).
type ContentTypeStore interface {
	Get(ctx context.Context, userID, tenantID uuid.UUID, contentType string) (*ContentTypeGrant, error)
	Grant(ctx context.Context, userID, tenantID uuid.UUID, contentType string, flags permissions.Flag) error
	Revoke(ctx context.Context, userID, tenantID uuid.UUID, contentType string, flags permissions.Flag) error
	Delete(ctx context.Context, userID, tenantID uuid.UUID, contentType string) error
}

// ResourceStore persists grants scoped to individual resource instances of
// a single kind. One ResourceStore serves one resource kind; the authz
// registry maps kind names to stores.
//
// Grant replaces the stored expiry with the one supplied: re-granting with
// a nil expiry converts an expiring grant into a permanent one. Stores do
// not interpret expiry beyond persisting it; validity is the resolver's
// concern (lazy invalidation).
type ResourceStore interface {
	Get(ctx context.Context, userID, tenantID, resourceID uuid.UUID) (*ResourceGrant, error)
	Grant(ctx context.Context, userID, tenantID, resourceID uuid.UUID, flags permissions.Flag, expiresAt *time.Time) error
	Revoke(ctx context.Context, userID, tenantID, resourceID uuid.UUID, flags permissions.Flag) error
	Delete(ctx context.Context, userID, tenantID, resourceID uuid.UUID) error

	// DeleteByResource removes every user's grants for one resource,
	// used to garbage-collect grants when the resource itself is deleted.
	DeleteByResource(ctx context.Context, resourceID uuid.UUID) error
}
