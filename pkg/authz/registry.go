package authz

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/gameguild-gg/guildkit/pkg/grants"
)

// ResourceResolver answers resource-level questions for one resource kind:
// the per-instance grant and the instance's owner. Domain entity kinds
// share no common ancestor, so each kind supplies its own resolver and the
// registry dispatches on the logical kind name.
type ResourceResolver interface {
	// Grant returns the stored grant for (userID, tenantID, resourceID),
	// or grants.ErrGrantNotFound. Expiry is not interpreted here.
	Grant(ctx context.Context, userID, tenantID, resourceID uuid.UUID) (*grants.ResourceGrant, error)

	// Owner returns the owning user of the resource instance, or
	// ErrOwnerUnknown when the resource is missing or unowned.
	Owner(ctx context.Context, resourceID uuid.UUID) (uuid.UUID, error)
}

// OwnerFunc looks up the owner of one resource instance.
type OwnerFunc func(ctx context.Context, resourceID uuid.UUID) (uuid.UUID, error)

// storeResolver adapts a grants.ResourceStore plus an ownership lookup
// into a ResourceResolver.
type storeResolver struct {
	store grants.ResourceStore
	owner OwnerFunc
}

func (r *storeResolver) Grant(ctx context.Context, userID, tenantID, resourceID uuid.UUID) (*grants.ResourceGrant, error) {
	return r.store.Get(ctx, userID, tenantID, resourceID)
}

func (r *storeResolver) Owner(ctx context.Context, resourceID uuid.UUID) (uuid.UUID, error) {
	if r.owner == nil {
		return uuid.Nil, ErrOwnerUnknown
	}
	return r.owner(ctx, resourceID)
}

type registration struct {
	resolver ResourceResolver
	store    grants.ResourceStore // nil for resolver-only kinds
}

// Registry is the dispatch table from logical resource kind names
// ("Product", "Comment") to their resolvers and grant stores. Kinds
// register once at startup; lookups for unregistered kinds are a normal
// miss, never an error, so unknown kinds fall through to coarser layers.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]registration
}

// NewRegistry creates an empty resource kind registry.
func NewRegistry() *Registry {
	return &Registry{kinds: make(map[string]registration)}
}

// Register binds a resource kind to its grant store and ownership lookup.
// A nil owner func makes every ownership query answer ErrOwnerUnknown,
// disabling the owner override for the kind. Registering the same kind
// twice is a programming error and fails loudly.
func (r *Registry) Register(kind string, store grants.ResourceStore, owner OwnerFunc) error {
	return r.register(kind, registration{
		resolver: &storeResolver{store: store, owner: owner},
		store:    store,
	})
}

// RegisterResolver binds a kind to a custom resolver with no grant store
// behind it. The kind participates in resolution but has no administrative
// grant surface.
func (r *Registry) RegisterResolver(kind string, resolver ResourceResolver) error {
	return r.register(kind, registration{resolver: resolver})
}

func (r *Registry) register(kind string, reg registration) error {
	if kind == "" {
		return grants.ErrEmptyContentType
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.kinds[kind]; exists {
		return fmt.Errorf("%w: %q", ErrKindAlreadyRegistered, kind)
	}
	r.kinds[kind] = reg
	return nil
}

// Resolver returns the resolver for a kind, if one is registered.
func (r *Registry) Resolver(kind string) (ResourceResolver, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.kinds[kind]
	return reg.resolver, ok
}

// Store returns the grant store for a kind, if the kind was registered
// with one.
func (r *Registry) Store(kind string) (grants.ResourceStore, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.kinds[kind]
	if !ok || reg.store == nil {
		return nil, false
	}
	return reg.store, true
}

// Kinds returns the registered kind names, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.kinds))
	for kind := range r.kinds {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}
