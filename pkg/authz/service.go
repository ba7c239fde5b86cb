package authz

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gameguild-gg/guildkit/pkg/grants"
	"github.com/gameguild-gg/guildkit/pkg/logger"
	"github.com/gameguild-gg/guildkit/pkg/permissions"
)

const defaultCacheTTL = 30 * time.Second

// Service answers permission questions against the three grant layers and
// carries the administrative grant/revoke surface. The three Has*
// primitives are independent single-layer lookups; Resolve combines them
// hierarchically.
//
// The administrative methods are not guarded by the service itself; they
// are expected to sit behind a higher-privilege check at the call site.
type Service struct {
	tenants      grants.TenantStore
	contentTypes grants.ContentTypeStore
	registry     *Registry
	cache        SnapshotCache
	cacheTTL     time.Duration
	log          *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger used for resolution outcomes and recovered
// layer failures. Records carry a component attribute identifying the
// resolution service.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log.With(logger.Component("authz"))
		}
	}
}

// WithSnapshotCache enables read-through caching of tenant and
// content-type lookups. A non-positive TTL keeps the default.
func WithSnapshotCache(cache SnapshotCache, ttl time.Duration) ServiceOption {
	return func(s *Service) {
		s.cache = cache
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// NewService creates a resolution service over the given stores and
// resource kind registry.
func NewService(tenants grants.TenantStore, contentTypes grants.ContentTypeStore, registry *Registry, opts ...ServiceOption) *Service {
	s := &Service{
		tenants:      tenants,
		contentTypes: contentTypes,
		registry:     registry,
		cacheTTL:     defaultCacheTTL,
		log:          slog.New(slog.NewTextHandler(io.Discard, nil)), // noop logger by default
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HasTenantPermission reports whether the user's tenant-wide grant includes
// the action. Absence of a grant is an ordinary false, not an error.
func (s *Service) HasTenantPermission(ctx context.Context, userID, tenantID uuid.UUID, action permissions.Flag) (bool, error) {
	entry, err := s.tenantEntry(ctx, userID, tenantID)
	if err != nil {
		return false, err
	}
	return entry.Found && entry.Flags.Has(action), nil
}

// HasContentTypePermission reports whether the user's grant for the entity
// kind includes the action.
func (s *Service) HasContentTypePermission(ctx context.Context, userID, tenantID uuid.UUID, contentType string, action permissions.Flag) (bool, error) {
	if contentType == "" {
		return false, grants.ErrEmptyContentType
	}

	entry, err := s.contentTypeEntry(ctx, userID, tenantID, contentType)
	if err != nil {
		return false, err
	}
	return entry.Found && entry.Flags.Has(action), nil
}

// HasResourcePermission reports whether the user's grant on one specific
// resource includes the action and has not expired. Kinds without a
// registered resolver yield ErrUnknownResourceKind.
func (s *Service) HasResourcePermission(ctx context.Context, userID, tenantID uuid.UUID, kind string, resourceID uuid.UUID, action permissions.Flag) (bool, error) {
	resolver, ok := s.registry.Resolver(kind)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownResourceKind, kind)
	}

	g, err := resolver.Grant(ctx, userID, tenantID, resourceID)
	if err != nil {
		if errors.Is(err, grants.ErrGrantNotFound) {
			return false, nil
		}
		return false, err
	}

	// Expired grants are treated exactly like missing ones (lazy invalidation).
	if !g.Valid(time.Now()) {
		return false, nil
	}
	return g.Flags.Has(action), nil
}

// IsOwner reports whether the user owns the resource. Unknown kinds and
// unowned resources answer false without error: ownership is a fallback
// fact, not a grant lookup.
func (s *Service) IsOwner(ctx context.Context, kind string, resourceID, userID uuid.UUID) (bool, error) {
	resolver, ok := s.registry.Resolver(kind)
	if !ok {
		return false, nil
	}

	owner, err := resolver.Owner(ctx, resourceID)
	if err != nil {
		if errors.Is(err, ErrOwnerUnknown) {
			return false, nil
		}
		return false, err
	}
	return owner == userID && owner != uuid.Nil, nil
}

// GrantTenant adds tenant-wide flags for the user, creating the grant on
// first use.
func (s *Service) GrantTenant(ctx context.Context, userID, tenantID uuid.UUID, flags ...permissions.Flag) error {
	if err := s.tenants.Grant(ctx, userID, tenantID, permissions.Union(flags...)); err != nil {
		return err
	}
	s.invalidate(ctx, tenantCacheKey(userID, tenantID))
	return nil
}

// RevokeTenant clears tenant-wide flags for the user.
func (s *Service) RevokeTenant(ctx context.Context, userID, tenantID uuid.UUID, flags ...permissions.Flag) error {
	if err := s.tenants.Revoke(ctx, userID, tenantID, permissions.Union(flags...)); err != nil {
		return err
	}
	s.invalidate(ctx, tenantCacheKey(userID, tenantID))
	return nil
}

// GrantContentType adds kind-scoped flags for the user.
func (s *Service) GrantContentType(ctx context.Context, userID, tenantID uuid.UUID, contentType string, flags ...permissions.Flag) error {
	if err := s.contentTypes.Grant(ctx, userID, tenantID, contentType, permissions.Union(flags...)); err != nil {
		return err
	}
	s.invalidate(ctx, contentTypeCacheKey(userID, tenantID, contentType))
	return nil
}

// RevokeContentType clears kind-scoped flags for the user.
func (s *Service) RevokeContentType(ctx context.Context, userID, tenantID uuid.UUID, contentType string, flags ...permissions.Flag) error {
	if err := s.contentTypes.Revoke(ctx, userID, tenantID, contentType, permissions.Union(flags...)); err != nil {
		return err
	}
	s.invalidate(ctx, contentTypeCacheKey(userID, tenantID, contentType))
	return nil
}

// GrantResource adds instance-scoped flags for the user, optionally
// expiring. The most recent grant call decides the expiry.
func (s *Service) GrantResource(ctx context.Context, kind string, userID, tenantID, resourceID uuid.UUID, expiresAt *time.Time, flags ...permissions.Flag) error {
	store, ok := s.registry.Store(kind)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownResourceKind, kind)
	}
	return store.Grant(ctx, userID, tenantID, resourceID, permissions.Union(flags...), expiresAt)
}

// RevokeResource clears instance-scoped flags for the user.
func (s *Service) RevokeResource(ctx context.Context, kind string, userID, tenantID, resourceID uuid.UUID, flags ...permissions.Flag) error {
	store, ok := s.registry.Store(kind)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownResourceKind, kind)
	}
	return store.Revoke(ctx, userID, tenantID, resourceID, permissions.Union(flags...))
}

// CleanupResourceGrants removes every user's grants for one resource,
// used after the resource itself is deleted so grants do not linger as
// unreachable orphans.
func (s *Service) CleanupResourceGrants(ctx context.Context, kind string, resourceID uuid.UUID) error {
	store, ok := s.registry.Store(kind)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownResourceKind, kind)
	}
	return store.DeleteByResource(ctx, resourceID)
}

func (s *Service) tenantEntry(ctx context.Context, userID, tenantID uuid.UUID) (CacheEntry, error) {
	key := tenantCacheKey(userID, tenantID)
	if s.cache != nil {
		if entry, ok := s.cache.Get(ctx, key); ok {
			return entry, nil
		}
	}

	var entry CacheEntry
	g, err := s.tenants.Get(ctx, userID, tenantID)
	switch {
	case err == nil:
		entry = CacheEntry{Flags: g.Flags, Found: true}
	case errors.Is(err, grants.ErrGrantNotFound):
		entry = CacheEntry{}
	default:
		return CacheEntry{}, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, entry, s.cacheTTL)
	}
	return entry, nil
}

func (s *Service) contentTypeEntry(ctx context.Context, userID, tenantID uuid.UUID, contentType string) (CacheEntry, error) {
	key := contentTypeCacheKey(userID, tenantID, contentType)
	if s.cache != nil {
		if entry, ok := s.cache.Get(ctx, key); ok {
			return entry, nil
		}
	}

	var entry CacheEntry
	g, err := s.contentTypes.Get(ctx, userID, tenantID, contentType)
	switch {
	case err == nil:
		entry = CacheEntry{Flags: g.Flags, Found: true}
	case errors.Is(err, grants.ErrGrantNotFound):
		entry = CacheEntry{}
	default:
		return CacheEntry{}, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, entry, s.cacheTTL)
	}
	return entry, nil
}

func (s *Service) invalidate(ctx context.Context, key string) {
	if s.cache != nil {
		s.cache.Delete(ctx, key)
	}
}
