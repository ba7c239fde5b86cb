package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/gameguild-gg/guildkit/pkg/logger"
)

func TestAttrConstructors(t *testing.T) {
	t.Parallel()

	t.Run("error", func(t *testing.T) {
		t.Parallel()

		err := errors.New("boom")
		attr := logger.Error(err)
		assert.Equal(t, "error", attr.Key)
		assert.Equal(t, err, attr.Value.Any())
	})

	t.Run("nil error is empty", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, slog.Attr{}, logger.Error(nil))
	})

	t.Run("identifiers", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		assert.Equal(t, slog.String("user_id", id.String()), logger.UserID(id))
		assert.Equal(t, slog.String("tenant_id", id.String()), logger.TenantID(id))
		assert.Equal(t, slog.String("resource_id", id.String()), logger.ResourceID(id))
	})

	t.Run("domain attrs", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, slog.String("content_type", "Product"), logger.ContentType("Product"))
		assert.Equal(t, slog.String("action", "edit"), logger.Action("edit"))
		assert.Equal(t, slog.String("component", "authz"), logger.Component("authz"))
		assert.Equal(t, slog.Duration("duration", time.Second), logger.Duration(time.Second))
	})

	t.Run("group", func(t *testing.T) {
		t.Parallel()

		attr := logger.Group("grant", logger.Action("read"))
		assert.Equal(t, "grant", attr.Key)
		assert.Len(t, attr.Value.Group(), 1)
	})
}
