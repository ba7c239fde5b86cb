package grants

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gameguild-gg/guildkit/pkg/permissions"
)

type tenantKey struct {
	userID   uuid.UUID
	tenantID uuid.UUID
}

type contentTypeKey struct {
	userID      uuid.UUID
	tenantID    uuid.UUID
	contentType string
}

type resourceKey struct {
	userID     uuid.UUID
	tenantID   uuid.UUID
	resourceID uuid.UUID
}

// MemoryTenantStore is an in-memory TenantStore for tests and development.
type MemoryTenantStore struct {
	mu     sync.RWMutex
	grants map[tenantKey]*TenantGrant
}

// NewMemoryTenantStore creates an empty in-memory tenant grant store.
func NewMemoryTenantStore() *MemoryTenantStore {
	return &MemoryTenantStore{grants: make(map[tenantKey]*TenantGrant)}
}

func (s *MemoryTenantStore) Get(_ context.Context, userID, tenantID uuid.UUID) (*TenantGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.grants[tenantKey{userID, tenantID}]
	if !ok {
		return nil, ErrGrantNotFound
	}
	copied := *g
	return &copied, nil
}

func (s *MemoryTenantStore) Grant(_ context.Context, userID, tenantID uuid.UUID, flags permissions.Flag) error {
	if userID == uuid.Nil || tenantID == uuid.Nil {
		return ErrNilID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := tenantKey{userID, tenantID}
	now := time.Now()
	if g, ok := s.grants[key]; ok {
		g.Flags = g.Flags.Add(flags)
		g.UpdatedAt = now
		return nil
	}
	s.grants[key] = &TenantGrant{
		UserID:    userID,
		TenantID:  tenantID,
		Flags:     flags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

func (s *MemoryTenantStore) Revoke(_ context.Context, userID, tenantID uuid.UUID, flags permissions.Flag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := tenantKey{userID, tenantID}
	g, ok := s.grants[key]
	if !ok {
		return ErrGrantNotFound
	}
	g.Flags = g.Flags.Remove(flags)
	if g.Flags.IsZero() {
		delete(s.grants, key)
		return nil
	}
	g.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryTenantStore) Delete(_ context.Context, userID, tenantID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := tenantKey{userID, tenantID}
	if _, ok := s.grants[key]; !ok {
		return ErrGrantNotFound
	}
	delete(s.grants, key)
	return nil
}

// MemoryContentTypeStore is an in-memory ContentTypeStore for tests and
// development.
type MemoryContentTypeStore struct {
	mu     sync.RWMutex
	grants map[contentTypeKey]*ContentTypeGrant
}

// NewMemoryContentTypeStore creates an empty in-memory content-type grant store.
func NewMemoryContentTypeStore() *MemoryContentTypeStore {
	return &MemoryContentTypeStore{grants: make(map[contentTypeKey]*ContentTypeGrant)}
}

func (s *MemoryContentTypeStore) Get(_ context.Context, userID, tenantID uuid.UUID, contentType string) (*ContentTypeGrant, error) {
	if contentType == "" {
		return nil, ErrEmptyContentType
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.grants[contentTypeKey{userID, tenantID, contentType}]
	if !ok {
		return nil, ErrGrantNotFound
	}
	copied := *g
	return &copied, nil
}

func (s *MemoryContentTypeStore) Grant(_ context.Context, userID, tenantID uuid.UUID, contentType string, flags permissions.Flag) error {
	if userID == uuid.Nil || tenantID == uuid.Nil {
		return ErrNilID
	}
	if contentType == "" {
		return ErrEmptyContentType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := contentTypeKey{userID, tenantID, contentType}
	now := time.Now()
	if g, ok := s.grants[key]; ok {
		g.Flags = g.Flags.Add(flags)
		g.UpdatedAt = now
		return nil
	}
	s.grants[key] = &ContentTypeGrant{
		UserID:      userID,
		TenantID:    tenantID,
		ContentType: contentType,
		Flags:       flags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return nil
}

func (s *MemoryContentTypeStore) Revoke(_ context.Context, userID, tenantID uuid.UUID, contentType string, flags permissions.Flag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := contentTypeKey{userID, tenantID, contentType}
	g, ok := s.grants[key]
	if !ok {
		return ErrGrantNotFound
	}
	g.Flags = g.Flags.Remove(flags)
	if g.Flags.IsZero() {
		delete(s.grants, key)
		return nil
	}
	g.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryContentTypeStore) Delete(_ context.Context, userID, tenantID uuid.UUID, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := contentTypeKey{userID, tenantID, contentType}
	if _, ok := s.grants[key]; !ok {
		return ErrGrantNotFound
	}
	delete(s.grants, key)
	return nil
}

// MemoryResourceStore is an in-memory ResourceStore for tests and
// development. One instance serves one resource kind.
type MemoryResourceStore struct {
	mu     sync.RWMutex
	grants map[resourceKey]*ResourceGrant
}

// NewMemoryResourceStore creates an empty in-memory resource grant store.
func NewMemoryResourceStore() *MemoryResourceStore {
	return &MemoryResourceStore{grants: make(map[resourceKey]*ResourceGrant)}
}

func (s *MemoryResourceStore) Get(_ context.Context, userID, tenantID, resourceID uuid.UUID) (*ResourceGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.grants[resourceKey{userID, tenantID, resourceID}]
	if !ok {
		return nil, ErrGrantNotFound
	}
	copied := *g
	if g.ExpiresAt != nil {
		exp := *g.ExpiresAt
		copied.ExpiresAt = &exp
	}
	return &copied, nil
}

func (s *MemoryResourceStore) Grant(_ context.Context, userID, tenantID, resourceID uuid.UUID, flags permissions.Flag, expiresAt *time.Time) error {
	if userID == uuid.Nil || tenantID == uuid.Nil || resourceID == uuid.Nil {
		return ErrNilID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := resourceKey{userID, tenantID, resourceID}
	now := time.Now()
	if g, ok := s.grants[key]; ok {
		g.Flags = g.Flags.Add(flags)
		g.ExpiresAt = expiresAt
		g.UpdatedAt = now
		return nil
	}
	s.grants[key] = &ResourceGrant{
		UserID:     userID,
		TenantID:   tenantID,
		ResourceID: resourceID,
		Flags:      flags,
		ExpiresAt:  expiresAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return nil
}

func (s *MemoryResourceStore) Revoke(_ context.Context, userID, tenantID, resourceID uuid.UUID, flags permissions.Flag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := resourceKey{userID, tenantID, resourceID}
	g, ok := s.grants[key]
	if !ok {
		return ErrGrantNotFound
	}
	g.Flags = g.Flags.Remove(flags)
	if g.Flags.IsZero() {
		delete(s.grants, key)
		return nil
	}
	g.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryResourceStore) Delete(_ context.Context, userID, tenantID, resourceID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := resourceKey{userID, tenantID, resourceID}
	if _, ok := s.grants[key]; !ok {
		return ErrGrantNotFound
	}
	delete(s.grants, key)
	return nil
}

func (s *MemoryResourceStore) DeleteByResource(_ context.Context, resourceID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.grants {
		if key.resourceID == resourceID {
			delete(s.grants, key)
		}
	}
	return nil
}

var (
	_ TenantStore      = (*MemoryTenantStore)(nil)
	_ ContentTypeStore = (*MemoryContentTypeStore)(nil)
	_ ResourceStore    = (*MemoryResourceStore)(nil)
)
