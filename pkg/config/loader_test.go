package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameguild-gg/guildkit/pkg/config"
)

type defaultsConfig struct {
	Name    string `env:"LOADER_TEST_NAME" envDefault:"guildkit"`
	Retries int    `env:"LOADER_TEST_RETRIES" envDefault:"3"`
	Debug   bool   `env:"LOADER_TEST_DEBUG" envDefault:"false"`
}

type envConfig struct {
	Value string `env:"LOADER_TEST_VALUE" envDefault:"fallback"`
}

type cachedConfig struct {
	Value string `env:"LOADER_TEST_CACHED" envDefault:"initial"`
}

type requiredConfig struct {
	Secret string `env:"LOADER_TEST_REQUIRED,required"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults apply when env is unset", func(t *testing.T) {
		var cfg defaultsConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "guildkit", cfg.Name)
		assert.Equal(t, 3, cfg.Retries)
		assert.False(t, cfg.Debug)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("LOADER_TEST_VALUE", "from-env")

		var cfg envConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "from-env", cfg.Value)
	})

	t.Run("same type is parsed once", func(t *testing.T) {
		t.Setenv("LOADER_TEST_CACHED", "first")

		var first cachedConfig
		require.NoError(t, config.Load(&first))
		require.Equal(t, "first", first.Value)

		// A later env change is invisible: the cached copy wins.
		t.Setenv("LOADER_TEST_CACHED", "second")

		var second cachedConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "first", second.Value)
	})

	t.Run("missing required variable fails", func(t *testing.T) {
		var cfg requiredConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer fails", func(t *testing.T) {
		err := config.Load[defaultsConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on missing required variable", func(t *testing.T) {
		assert.Panics(t, func() {
			var cfg requiredConfig
			config.MustLoad(&cfg)
		})
	})
}
