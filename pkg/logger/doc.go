// Package logger wraps log/slog with a functional-options factory, shared
// attribute constructors, and transparent injection of context values into
// every record.
//
// New builds a configured *slog.Logger:
//
//	log := logger.New(
//		logger.WithProduction("authz-api"),
//		logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.InfoContext(ctx, "grant stored", logger.UserID(userID))
//
// Context extractors registered via WithContextExtractors or
// WithContextValue run on each log call, so request-scoped values such as
// request IDs appear on every record without being threaded through call
// sites.
//
// The constructors in attr.go (Error, UserID, TenantID, ResourceID, ...)
// keep attribute keys consistent across components; prefer them over ad-hoc
// key-value pairs when logging authorization events.
package logger
