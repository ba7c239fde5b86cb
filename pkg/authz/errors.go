package authz

import "errors"

var (
	// ErrUnauthenticated is returned when no verified identity is available
	// for the request. Checked before any resolution happens.
	ErrUnauthenticated = errors.New("no authenticated identity")

	// ErrMalformedRequest is returned when the action needs an existing
	// resource but the configured resource id parameter is missing or not
	// a valid identifier.
	ErrMalformedRequest = errors.New("missing or malformed resource identifier")

	// ErrPermissionDenied is returned when resolution completed and every
	// applicable layer (and the owner override, when enabled) denied.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUnknownResourceKind is returned by resource-level lookups for kinds
	// with no registered resolver. During hierarchical resolution this is a
	// normal fall-through, not a failure.
	ErrUnknownResourceKind = errors.New("unknown resource kind")

	// ErrKindAlreadyRegistered is returned when registering a resolver for
	// a kind that already has one.
	ErrKindAlreadyRegistered = errors.New("resource kind already registered")

	// ErrOwnerUnknown is returned by ownership lookups when the resource
	// does not exist or carries no owner.
	ErrOwnerUnknown = errors.New("resource owner unknown")
)
