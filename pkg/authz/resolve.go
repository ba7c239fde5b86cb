package authz

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gameguild-gg/guildkit/pkg/logger"
	"github.com/gameguild-gg/guildkit/pkg/permissions"
)

// Layer identifies which level of the hierarchy produced a decision.
type Layer int

const (
	// LayerNone means no layer granted the request.
	LayerNone Layer = iota
	// LayerResource means an instance-scoped grant decided.
	LayerResource
	// LayerContentType means a kind-scoped grant decided.
	LayerContentType
	// LayerTenant means the tenant-wide grant decided.
	LayerTenant
	// LayerOwner means the ownership fallback decided.
	LayerOwner
)

func (l Layer) String() string {
	switch l {
	case LayerResource:
		return "resource"
	case LayerContentType:
		return "content_type"
	case LayerTenant:
		return "tenant"
	case LayerOwner:
		return "owner"
	default:
		return "none"
	}
}

// Request is one authorization question: can the user perform the action
// on the (optionally identified) resource in the tenant.
type Request struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	Action   permissions.Flag

	// ContentType is the logical kind name, used both for resource-layer
	// dispatch and the content-type layer. Empty skips both layers.
	ContentType string

	// ResourceID identifies one instance. uuid.Nil means no resource
	// identity (create and collection operations), skipping the resource
	// layer and the owner override.
	ResourceID uuid.UUID

	// OwnerOverride enables the ownership fallback, consulted only after
	// all three grant layers denied.
	OwnerOverride bool
}

// Decision is the outcome of hierarchical resolution.
type Decision struct {
	Granted bool
	Layer   Layer
}

// Resolve walks the grant hierarchy from most to least specific:
// resource, then content type, then tenant. The decision is a pure union —
// a grant at any layer suffices and no layer can veto another — so the
// fixed order only affects which layer short-circuits first, never the
// outcome. When every layer denies and the owner override is enabled,
// ownership of the resource is consulted last.
//
// Layer lookup failures never fail the request: an unregistered resource
// kind falls through silently, and an infrastructure fault is logged and
// falls through, trading precision for availability.
func (s *Service) Resolve(ctx context.Context, req Request) Decision {
	if req.ResourceID != uuid.Nil && req.ContentType != "" {
		ok, err := s.HasResourcePermission(ctx, req.UserID, req.TenantID, req.ContentType, req.ResourceID, req.Action)
		switch {
		case err == nil && ok:
			s.logGranted(ctx, req, LayerResource)
			return Decision{Granted: true, Layer: LayerResource}
		case err != nil && !errors.Is(err, ErrUnknownResourceKind):
			s.log.WarnContext(ctx, "resource layer lookup failed, falling through",
				logger.UserID(req.UserID),
				logger.TenantID(req.TenantID),
				logger.ContentType(req.ContentType),
				logger.ResourceID(req.ResourceID),
				logger.Error(err),
			)
		}
	}

	if req.ContentType != "" {
		ok, err := s.HasContentTypePermission(ctx, req.UserID, req.TenantID, req.ContentType, req.Action)
		if err != nil {
			s.log.WarnContext(ctx, "content type layer lookup failed, falling through",
				logger.UserID(req.UserID),
				logger.TenantID(req.TenantID),
				logger.ContentType(req.ContentType),
				logger.Error(err),
			)
		} else if ok {
			s.logGranted(ctx, req, LayerContentType)
			return Decision{Granted: true, Layer: LayerContentType}
		}
	}

	ok, err := s.HasTenantPermission(ctx, req.UserID, req.TenantID, req.Action)
	if err != nil {
		s.log.WarnContext(ctx, "tenant layer lookup failed, falling through",
			logger.UserID(req.UserID),
			logger.TenantID(req.TenantID),
			logger.Error(err),
		)
	} else if ok {
		s.logGranted(ctx, req, LayerTenant)
		return Decision{Granted: true, Layer: LayerTenant}
	}

	// Ownership runs strictly after the grant layers and never mixes with
	// expiration: owning a resource has no expiry.
	if req.OwnerOverride && req.ResourceID != uuid.Nil && req.ContentType != "" {
		isOwner, err := s.IsOwner(ctx, req.ContentType, req.ResourceID, req.UserID)
		if err != nil {
			s.log.WarnContext(ctx, "ownership lookup failed",
				logger.UserID(req.UserID),
				logger.ContentType(req.ContentType),
				logger.ResourceID(req.ResourceID),
				logger.Error(err),
			)
		} else if isOwner {
			s.logGranted(ctx, req, LayerOwner)
			return Decision{Granted: true, Layer: LayerOwner}
		}
	}

	s.log.DebugContext(ctx, "permission denied",
		logger.UserID(req.UserID),
		logger.TenantID(req.TenantID),
		logger.Action(req.Action.String()),
		logger.ContentType(req.ContentType),
	)
	return Decision{Granted: false, Layer: LayerNone}
}

func (s *Service) logGranted(ctx context.Context, req Request, layer Layer) {
	s.log.DebugContext(ctx, "permission granted",
		logger.UserID(req.UserID),
		logger.TenantID(req.TenantID),
		logger.Action(req.Action.String()),
		slog.String("layer", layer.String()),
	)
}
