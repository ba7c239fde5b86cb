package permissions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameguild-gg/guildkit/pkg/permissions"
)

func TestFlag_BitLayout(t *testing.T) {
	t.Parallel()

	// The named flags occupy contiguous low bits starting at bit 0, so
	// persisted bitmasks have no dead bits.
	assert.Equal(t, permissions.Flag(1), permissions.Read)
	assert.Equal(t, permissions.Flag(1<<1), permissions.Create)
	assert.Equal(t, permissions.Flag(1<<15), permissions.Administer)
	assert.Equal(t, permissions.Flag(1<<16-1), permissions.All)
}

func TestFlag_Has(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		flags  permissions.Flag
		action permissions.Flag
		want   bool
	}{
		{
			name:   "single flag present",
			flags:  permissions.Read,
			action: permissions.Read,
			want:   true,
		},
		{
			name:   "single flag absent",
			flags:  permissions.Read,
			action: permissions.Edit,
			want:   false,
		},
		{
			name:   "combined flags contain action",
			flags:  permissions.Read | permissions.Edit | permissions.Comment,
			action: permissions.Edit,
			want:   true,
		},
		{
			name:   "multi-bit action requires all bits",
			flags:  permissions.Read | permissions.Edit,
			action: permissions.Read | permissions.Delete,
			want:   false,
		},
		{
			name:   "all contains everything",
			flags:  permissions.All,
			action: permissions.Administer,
			want:   true,
		},
		{
			name:   "none contains nothing",
			flags:  permissions.None,
			action: permissions.Read,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.flags.Has(tt.action))
		})
	}
}

func TestFlag_Add(t *testing.T) {
	t.Parallel()

	t.Run("add is additive", func(t *testing.T) {
		t.Parallel()
		f := permissions.Read
		f = f.Add(permissions.Edit)
		assert.True(t, f.Has(permissions.Read))
		assert.True(t, f.Has(permissions.Edit))
	})

	t.Run("add is idempotent", func(t *testing.T) {
		t.Parallel()
		once := permissions.Read.Add(permissions.Edit)
		twice := once.Add(permissions.Edit)
		assert.Equal(t, once, twice)
	})

	t.Run("add never clears existing bits", func(t *testing.T) {
		t.Parallel()
		f := permissions.Read | permissions.Publish
		f = f.Add(permissions.Delete, permissions.Approve)
		assert.True(t, f.Has(permissions.Read))
		assert.True(t, f.Has(permissions.Publish))
		assert.True(t, f.Has(permissions.Delete))
		assert.True(t, f.Has(permissions.Approve))
	})
}

func TestFlag_Remove(t *testing.T) {
	t.Parallel()

	f := permissions.Read | permissions.Edit | permissions.Delete
	f = f.Remove(permissions.Edit)

	assert.True(t, f.Has(permissions.Read))
	assert.False(t, f.Has(permissions.Edit))
	assert.True(t, f.Has(permissions.Delete))

	f = f.Remove(permissions.Read, permissions.Delete)
	assert.True(t, f.IsZero())
}

func TestUnion(t *testing.T) {
	t.Parallel()

	assert.Equal(t, permissions.None, permissions.Union())
	assert.Equal(t,
		permissions.Read|permissions.Edit|permissions.Comment,
		permissions.Union(permissions.Read, permissions.Edit, permissions.Comment),
	)
}

func TestFlag_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		flags permissions.Flag
		want  string
	}{
		{name: "none", flags: permissions.None, want: "none"},
		{name: "single", flags: permissions.Read, want: "read"},
		{name: "ordered combination", flags: permissions.Edit | permissions.Read, want: "read|edit"},
		{name: "administer", flags: permissions.Administer, want: "administer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.flags.String())
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    permissions.Flag
		wantErr error
	}{
		{name: "canonical name", input: "read", want: permissions.Read},
		{name: "case insensitive", input: "Publish", want: permissions.Publish},
		{name: "surrounding spaces", input: " edit ", want: permissions.Edit},
		{name: "none keyword", input: "none", want: permissions.None},
		{name: "empty string", input: "", want: permissions.None},
		{name: "unknown name", input: "teleport", wantErr: permissions.ErrUnknownFlag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := permissions.Parse(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlag_TextRoundTrip(t *testing.T) {
	t.Parallel()

	original := permissions.Read | permissions.Edit | permissions.Analytics

	text, err := original.MarshalText()
	require.NoError(t, err)

	var decoded permissions.Flag
	require.NoError(t, decoded.UnmarshalText(text))
	assert.Equal(t, original, decoded)
}

func TestFlag_UnmarshalText_Invalid(t *testing.T) {
	t.Parallel()

	var f permissions.Flag
	err := f.UnmarshalText([]byte("read|warp"))
	assert.ErrorIs(t, err, permissions.ErrUnknownFlag)
}
