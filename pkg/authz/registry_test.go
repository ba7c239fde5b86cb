package authz_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameguild-gg/guildkit/pkg/authz"
	"github.com/gameguild-gg/guildkit/pkg/grants"
)

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	registry := authz.NewRegistry()
	store := grants.NewMemoryResourceStore()

	require.NoError(t, registry.Register("Product", store, nil))

	t.Run("duplicate kind rejected", func(t *testing.T) {
		t.Parallel()
		err := registry.Register("Product", store, nil)
		assert.ErrorIs(t, err, authz.ErrKindAlreadyRegistered)
	})

	t.Run("empty kind rejected", func(t *testing.T) {
		t.Parallel()
		err := registry.Register("", store, nil)
		assert.ErrorIs(t, err, grants.ErrEmptyContentType)
	})

	t.Run("lookup hit and miss", func(t *testing.T) {
		t.Parallel()
		_, ok := registry.Resolver("Product")
		assert.True(t, ok)
		_, ok = registry.Resolver("Widget")
		assert.False(t, ok)
	})

	t.Run("store accessor", func(t *testing.T) {
		t.Parallel()
		got, ok := registry.Store("Product")
		assert.True(t, ok)
		assert.Same(t, store, got.(*grants.MemoryResourceStore))
	})
}

func TestRegistry_RegisterResolver(t *testing.T) {
	t.Parallel()

	registry := authz.NewRegistry()
	require.NoError(t, registry.RegisterResolver("Session", failingResolver{}))

	_, ok := registry.Resolver("Session")
	assert.True(t, ok)

	// Resolver-only kinds expose no administrative store.
	_, ok = registry.Store("Session")
	assert.False(t, ok)
}

func TestRegistry_Kinds(t *testing.T) {
	t.Parallel()

	registry := authz.NewRegistry()
	require.NoError(t, registry.Register("Product", grants.NewMemoryResourceStore(), nil))
	require.NoError(t, registry.Register("Comment", grants.NewMemoryResourceStore(), nil))

	assert.Equal(t, []string{"Comment", "Product"}, registry.Kinds())
}

func TestStoreResolver_NilOwnerFunc(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	registry := authz.NewRegistry()
	require.NoError(t, registry.Register("Product", grants.NewMemoryResourceStore(), nil))

	resolver, ok := registry.Resolver("Product")
	require.True(t, ok)

	_, err := resolver.Owner(ctx, uuid.New())
	assert.ErrorIs(t, err, authz.ErrOwnerUnknown)
}
