package permissions

import "errors"

var (
	// ErrUnknownFlag is returned when parsing a flag name that has no
	// corresponding named bit.
	ErrUnknownFlag = errors.New("unknown permission flag")

	// ErrUnknownPreset is returned when looking up a preset that was not
	// defined in the loaded preset set.
	ErrUnknownPreset = errors.New("unknown permission preset")

	// ErrInvalidPresetFile is returned when a preset file cannot be decoded.
	ErrInvalidPresetFile = errors.New("invalid permission preset file")
)
