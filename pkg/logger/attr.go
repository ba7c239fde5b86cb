package logger

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Attribute constructors shared across the codebase so permission and grant
// events use consistent keys regardless of which component emits them.

// Group nests attrs under name.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records err under the key "error". Nil yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the subject under the key "user_id".
func UserID(id uuid.UUID) slog.Attr {
	return slog.String("user_id", id.String())
}

// TenantID records the tenant under the key "tenant_id".
func TenantID(id uuid.UUID) slog.Attr {
	return slog.String("tenant_id", id.String())
}

// ResourceID records the resource instance under the key "resource_id".
func ResourceID(id uuid.UUID) slog.Attr {
	return slog.String("resource_id", id.String())
}

// ContentType records the resource kind under the key "content_type".
func ContentType(name string) slog.Attr {
	return slog.String("content_type", name)
}

// Action records the requested permission under the key "action".
func Action(action string) slog.Attr {
	return slog.String("action", action)
}

// Component records the emitting component under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Duration records elapsed time under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
