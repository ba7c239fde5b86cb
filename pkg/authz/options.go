package authz

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gameguild-gg/guildkit/pkg/logger"
)

// ErrorHandler translates an authorization failure into an HTTP response.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// IdentityFunc extracts the verified identity from a request. The default
// reads the identity placed in the request context by an upstream
// authenticator.
type IdentityFunc func(r *http.Request) (Identity, bool)

// requireConfig holds middleware configuration.
type requireConfig struct {
	resourceParam string
	contentType   string
	ownerOverride bool
	identityFn    IdentityFunc
	errorHandler  ErrorHandler
	log           *slog.Logger
}

// RequireOption configures the Require middleware.
type RequireOption func(*requireConfig)

// WithResourceParam names the route (or query) parameter carrying the
// resource id. Without it the middleware never attempts resource-level
// resolution.
func WithResourceParam(name string) RequireOption {
	return func(c *requireConfig) {
		c.resourceParam = name
	}
}

// WithContentType sets the logical entity kind name used for resource
// dispatch and the content-type layer.
func WithContentType(name string) RequireOption {
	return func(c *requireConfig) {
		c.contentType = name
	}
}

// WithOwnerOverride lets resource owners through when every grant layer
// denies. Only effective on endpoints that also configure a resource param.
func WithOwnerOverride() RequireOption {
	return func(c *requireConfig) {
		c.ownerOverride = true
	}
}

// WithIdentityFunc sets a custom identity extraction strategy.
func WithIdentityFunc(fn IdentityFunc) RequireOption {
	return func(c *requireConfig) {
		if fn != nil {
			c.identityFn = fn
		}
	}
}

// WithErrorHandler sets a custom rejection handler.
func WithErrorHandler(handler ErrorHandler) RequireOption {
	return func(c *requireConfig) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

// WithMiddlewareLogger sets the logger for rejections and unexpected
// middleware failures. Records carry a component attribute identifying
// the filter.
func WithMiddlewareLogger(log *slog.Logger) RequireOption {
	return func(c *requireConfig) {
		if log != nil {
			c.log = log.With(logger.Component("authz.filter"))
		}
	}
}

func defaultIdentityFunc(r *http.Request) (Identity, bool) {
	return IdentityFromContext(r.Context())
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
	case errors.Is(err, ErrMalformedRequest):
		http.Error(w, "Missing or malformed resource identifier", http.StatusBadRequest)
	case errors.Is(err, ErrPermissionDenied):
		http.Error(w, "Forbidden", http.StatusForbidden)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
