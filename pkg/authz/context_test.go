package authz_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameguild-gg/guildkit/pkg/authz"
)

func TestIdentityContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		id := authz.Identity{UserID: uuid.New(), TenantID: uuid.New()}
		ctx := authz.WithIdentity(context.Background(), id)

		got, ok := authz.IdentityFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, id, got)
	})

	t.Run("absent identity", func(t *testing.T) {
		t.Parallel()

		_, ok := authz.IdentityFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("global user has zero tenant", func(t *testing.T) {
		t.Parallel()

		id := authz.Identity{UserID: uuid.New()}
		ctx := authz.WithIdentity(context.Background(), id)

		got, ok := authz.IdentityFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, uuid.Nil, got.TenantID)
	})
}
