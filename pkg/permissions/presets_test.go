package permissions_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameguild-gg/guildkit/pkg/permissions"
)

func TestLoadPresets(t *testing.T) {
	t.Parallel()

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()

		src := `
presets:
  viewer: [read]
  editor: [read, create, edit, publish]
`
		presets, err := permissions.LoadPresets(strings.NewReader(src))
		require.NoError(t, err)

		viewer, err := presets.Get("viewer")
		require.NoError(t, err)
		assert.Equal(t, permissions.Read, viewer)

		editor, err := presets.Get("editor")
		require.NoError(t, err)
		assert.True(t, editor.Has(permissions.Read))
		assert.True(t, editor.Has(permissions.Create))
		assert.True(t, editor.Has(permissions.Edit))
		assert.True(t, editor.Has(permissions.Publish))
		assert.False(t, editor.Has(permissions.Delete))
	})

	t.Run("unknown flag name fails", func(t *testing.T) {
		t.Parallel()

		src := `
presets:
  broken: [read, levitate]
`
		_, err := permissions.LoadPresets(strings.NewReader(src))
		assert.ErrorIs(t, err, permissions.ErrInvalidPresetFile)
		assert.ErrorIs(t, err, permissions.ErrUnknownFlag)
	})

	t.Run("malformed yaml fails", func(t *testing.T) {
		t.Parallel()

		_, err := permissions.LoadPresets(strings.NewReader("presets: ["))
		assert.ErrorIs(t, err, permissions.ErrInvalidPresetFile)
	})
}

func TestDefaultPresets(t *testing.T) {
	t.Parallel()

	presets := permissions.DefaultPresets()

	admin, err := presets.Get("admin")
	require.NoError(t, err)
	assert.Equal(t, permissions.All, admin)

	viewer, err := presets.Get("viewer")
	require.NoError(t, err)
	assert.Equal(t, permissions.Read, viewer)

	_, err = presets.Get("warlord")
	assert.ErrorIs(t, err, permissions.ErrUnknownPreset)
}
