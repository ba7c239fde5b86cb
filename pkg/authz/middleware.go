package authz

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gameguild-gg/guildkit/pkg/logger"
	"github.com/gameguild-gg/guildkit/pkg/permissions"
)

// Require creates HTTP middleware guarding an endpoint with one required
// action. It extracts the verified identity and the optional resource id
// from the request, runs hierarchical resolution, and rejects with the
// appropriate status when denied. Each request is evaluated exactly once,
// statelessly; the only side effect is logging.
//
//	r.With(authz.Require(svc, permissions.Edit,
//	    authz.WithContentType("Product"),
//	    authz.WithResourceParam("productID"),
//	    authz.WithOwnerOverride(),
//	)).Put("/products/{productID}", updateProduct)
func Require(svc *Service, action permissions.Flag, opts ...RequireOption) func(http.Handler) http.Handler {
	cfg := &requireConfig{
		identityFn:   defaultIdentityFunc,
		errorHandler: defaultErrorHandler,
		log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// A panic below this middleware is the handler's own concern;
			// one inside the authorization path must not leak as a broken
			// response without an audit trail.
			defer func() {
				if rec := recover(); rec != nil {
					cfg.log.ErrorContext(r.Context(), "authorization filter panicked",
						logger.Action(action.String()),
						slog.String("path", r.URL.Path),
						slog.Any("panic", rec),
					)
					cfg.errorHandler(w, r, fmt.Errorf("authorization filter panic: %v", rec))
				}
			}()

			identity, ok := cfg.identityFn(r)
			if !ok || identity.UserID == uuid.Nil {
				cfg.errorHandler(w, r, ErrUnauthenticated)
				return
			}

			resourceID, err := extractResourceID(r, cfg.resourceParam, action)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}

			decision := svc.Resolve(r.Context(), Request{
				UserID:        identity.UserID,
				TenantID:      identity.TenantID,
				Action:        action,
				ContentType:   cfg.contentType,
				ResourceID:    resourceID,
				OwnerOverride: cfg.ownerOverride,
			})
			if !decision.Granted {
				cfg.log.InfoContext(r.Context(), "request forbidden",
					logger.UserID(identity.UserID),
					logger.TenantID(identity.TenantID),
					logger.Action(action.String()),
					slog.String("path", r.URL.Path),
					logger.Duration(time.Since(start)),
				)
				cfg.errorHandler(w, r, ErrPermissionDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractResourceID pulls the resource id from the chi route parameter,
// falling back to the query string. A missing or malformed id is tolerated
// for actions that operate before a resource exists (create, collection
// read); for everything else it is a client error.
func extractResourceID(r *http.Request, param string, action permissions.Flag) (uuid.UUID, error) {
	if param == "" {
		return uuid.Nil, nil
	}

	raw := chi.URLParam(r, param)
	if raw == "" {
		raw = r.URL.Query().Get(param)
	}

	if raw == "" {
		if toleratesMissingResource(action) {
			return uuid.Nil, nil
		}
		return uuid.Nil, ErrMalformedRequest
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		if toleratesMissingResource(action) {
			return uuid.Nil, nil
		}
		return uuid.Nil, fmt.Errorf("%w: %q", ErrMalformedRequest, raw)
	}
	return id, nil
}

// toleratesMissingResource reports whether the action can proceed without
// an existing resource: pure create and read actions target a collection
// or a not-yet-created instance, everything else needs a concrete target.
func toleratesMissingResource(action permissions.Flag) bool {
	return action.Remove(permissions.Create, permissions.Read).IsZero()
}
