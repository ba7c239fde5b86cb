package authz_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameguild-gg/guildkit/pkg/authz"
	"github.com/gameguild-gg/guildkit/pkg/grants"
	"github.com/gameguild-gg/guildkit/pkg/permissions"
)

func TestService_HasTenantPermission(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	userID := uuid.New()
	tenantID := uuid.New()

	ok, err := f.svc.HasTenantPermission(ctx, userID, tenantID, permissions.Read)
	require.NoError(t, err)
	assert.False(t, ok, "no grant means false, not an error")

	require.NoError(t, f.svc.GrantTenant(ctx, userID, tenantID, permissions.Read, permissions.Comment))

	ok, err = f.svc.HasTenantPermission(ctx, userID, tenantID, permissions.Read)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.svc.HasTenantPermission(ctx, userID, tenantID, permissions.Delete)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_HasContentTypePermission(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	userID := uuid.New()
	tenantID := uuid.New()

	require.NoError(t, f.svc.GrantContentType(ctx, userID, tenantID, "Product", permissions.Read))
	require.NoError(t, f.svc.GrantContentType(ctx, userID, tenantID, "Product", permissions.Edit))

	// Sequential grants accumulate into one row.
	g, err := f.contentTypes.Get(ctx, userID, tenantID, "Product")
	require.NoError(t, err)
	assert.Equal(t, permissions.Read|permissions.Edit, g.Flags)

	ok, err := f.svc.HasContentTypePermission(ctx, userID, tenantID, "Product", permissions.Edit)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.svc.HasContentTypePermission(ctx, userID, tenantID, "Comment", permissions.Edit)
	require.NoError(t, err)
	assert.False(t, ok, "grant is scoped to its own kind")

	_, err = f.svc.HasContentTypePermission(ctx, userID, tenantID, "", permissions.Edit)
	assert.ErrorIs(t, err, grants.ErrEmptyContentType)
}

func TestService_HasResourcePermission(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := uuid.New()
	tenantID := uuid.New()
	resourceID := uuid.New()

	t.Run("valid grant", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		require.NoError(t, f.svc.GrantResource(ctx, "Product", userID, tenantID, resourceID, nil, permissions.Edit))

		ok, err := f.svc.HasResourcePermission(ctx, userID, tenantID, "Product", resourceID, permissions.Edit)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("expired grant never contributes", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		yesterday := time.Now().Add(-24 * time.Hour)
		require.NoError(t, f.svc.GrantResource(ctx, "Product", userID, tenantID, resourceID, &yesterday, permissions.Edit))

		ok, err := f.svc.HasResourcePermission(ctx, userID, tenantID, "Product", resourceID, permissions.Edit)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown kind errors", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		_, err := f.svc.HasResourcePermission(ctx, userID, tenantID, "Widget", resourceID, permissions.Edit)
		assert.ErrorIs(t, err, authz.ErrUnknownResourceKind)
	})
}

func TestService_RevokeTenant(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	userID := uuid.New()
	tenantID := uuid.New()

	require.NoError(t, f.svc.GrantTenant(ctx, userID, tenantID, permissions.Read, permissions.Edit))
	require.NoError(t, f.svc.RevokeTenant(ctx, userID, tenantID, permissions.Edit))

	ok, err := f.svc.HasTenantPermission(ctx, userID, tenantID, permissions.Edit)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.svc.HasTenantPermission(ctx, userID, tenantID, permissions.Read)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestService_CleanupResourceGrants(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	tenantID := uuid.New()
	resourceID := uuid.New()
	alice := uuid.New()
	bob := uuid.New()

	require.NoError(t, f.svc.GrantResource(ctx, "Comment", alice, tenantID, resourceID, nil, permissions.Edit))
	require.NoError(t, f.svc.GrantResource(ctx, "Comment", bob, tenantID, resourceID, nil, permissions.Read))

	require.NoError(t, f.svc.CleanupResourceGrants(ctx, "Comment", resourceID))

	ok, err := f.svc.HasResourcePermission(ctx, alice, tenantID, "Comment", resourceID, permissions.Edit)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = f.svc.HasResourcePermission(ctx, bob, tenantID, "Comment", resourceID, permissions.Read)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_SnapshotCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := uuid.New()
	tenantID := uuid.New()

	tenants := grants.NewMemoryTenantStore()
	contentTypes := grants.NewMemoryContentTypeStore()
	svc := authz.NewService(tenants, contentTypes, authz.NewRegistry(),
		authz.WithSnapshotCache(authz.NewLRUSnapshotCache(16), time.Minute))

	t.Run("negative result is cached", func(t *testing.T) {
		ok, err := svc.HasTenantPermission(ctx, userID, tenantID, permissions.Read)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("grant invalidates the cached entry", func(t *testing.T) {
		require.NoError(t, svc.GrantTenant(ctx, userID, tenantID, permissions.Read))

		ok, err := svc.HasTenantPermission(ctx, userID, tenantID, permissions.Read)
		require.NoError(t, err)
		assert.True(t, ok, "write must not be masked by the earlier negative entry")
	})

	t.Run("revoke invalidates too", func(t *testing.T) {
		require.NoError(t, svc.RevokeTenant(ctx, userID, tenantID, permissions.Read))

		ok, err := svc.HasTenantPermission(ctx, userID, tenantID, permissions.Read)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("cached read does not hit the store", func(t *testing.T) {
		other := uuid.New()
		require.NoError(t, svc.GrantTenant(ctx, other, tenantID, permissions.Read))

		// Prime the cache, then change the store behind the service's back.
		ok, err := svc.HasTenantPermission(ctx, other, tenantID, permissions.Read)
		require.NoError(t, err)
		assert.True(t, ok)

		require.NoError(t, tenants.Delete(ctx, other, tenantID))

		ok, err = svc.HasTenantPermission(ctx, other, tenantID, permissions.Read)
		require.NoError(t, err)
		assert.True(t, ok, "served from snapshot until TTL or invalidation")
	})
}
