package grants

import "errors"

var (
	// ErrGrantNotFound is returned when no grant exists for the requested key.
	ErrGrantNotFound = errors.New("grant not found")

	// ErrEmptyContentType is returned when a content-type scoped operation
	// receives an empty kind name.
	ErrEmptyContentType = errors.New("content type name is empty")

	// ErrNilID is returned when a store operation receives a zero UUID where
	// a real identifier is required.
	ErrNilID = errors.New("identifier is empty")
)
