package permissions

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// Presets maps bundle names to permission flags. Bundles are a grant-time
// convenience: administrative code grants a whole bundle instead of
// enumerating individual flags on every call.
type Presets map[string]Flag

// DefaultPresets returns the bundles the platform ships with. They mirror
// the common collaboration tiers: a viewer reads, a contributor creates
// drafts, an editor publishes, a moderator reviews and approves, and an
// admin holds everything.
func DefaultPresets() Presets {
	return Presets{
		"viewer":      Read,
		"contributor": Read | Create | Draft | Comment,
		"editor":      Read | Create | Edit | Draft | Publish | Comment,
		"moderator":   Read | Comment | Review | Approve | Report,
		"admin":       All,
	}
}

// Get resolves a preset by name.
func (p Presets) Get(name string) (Flag, error) {
	f, ok := p[name]
	if !ok {
		return None, ErrUnknownPreset
	}
	return f, nil
}

// presetFile is the on-disk YAML layout:
//
//	presets:
//	  editor: [read, create, edit, publish]
//	  moderator: [read, review, approve]
type presetFile struct {
	Presets map[string][]string `yaml:"presets"`
}

// LoadPresets decodes preset bundles from YAML. Flag names are validated
// eagerly so a typo in a deployment file fails at startup, not at grant time.
func LoadPresets(r io.Reader) (Presets, error) {
	var file presetFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, errors.Join(ErrInvalidPresetFile, err)
	}

	out := make(Presets, len(file.Presets))
	for name, flagNames := range file.Presets {
		flags, err := ParseList(flagNames)
		if err != nil {
			return nil, errors.Join(ErrInvalidPresetFile, err)
		}
		out[name] = flags
	}
	return out, nil
}
