package config

import "errors"

var (
	// ErrParsingConfig wraps failures to parse the environment into a struct.
	ErrParsingConfig = errors.New("failed to parse environment into config")

	// ErrNilPointer is returned when Load receives a nil destination.
	ErrNilPointer = errors.New("nil pointer passed to config loader")
)
