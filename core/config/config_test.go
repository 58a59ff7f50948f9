package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ouch/core/config"
)

type pageConfig struct {
	Theme   string   `env:"CONFIG_TEST_THEME" envDefault:"light"`
	Frames  bool     `env:"CONFIG_TEST_FRAMES"`
	Sources []string `env:"CONFIG_TEST_SOURCES" envSeparator:","`
}

type requiredConfig struct {
	Secret string `env:"CONFIG_TEST_REQUIRED,required"`
}

type badConfig struct {
	Port int `env:"CONFIG_TEST_BAD_PORT"`
}

// Tests in this file share process environment and the package cache, so they run sequentially.

func TestLoad(t *testing.T) {
	t.Run("parses env with defaults", func(t *testing.T) {
		config.Reset()
		t.Setenv("CONFIG_TEST_FRAMES", "true")
		t.Setenv("CONFIG_TEST_SOURCES", "/src/a,/src/b")

		var cfg pageConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "light", cfg.Theme)
		assert.True(t, cfg.Frames)
		assert.Equal(t, []string{"/src/a", "/src/b"}, cfg.Sources)
	})

	t.Run("caches per type", func(t *testing.T) {
		config.Reset()
		t.Setenv("CONFIG_TEST_THEME", "dark")

		var first pageConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("CONFIG_TEST_THEME", "solarized")
		var second pageConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "dark", second.Theme)

		config.Reset()
		var third pageConfig
		require.NoError(t, config.Load(&third))
		assert.Equal(t, "solarized", third.Theme)
	})

	t.Run("missing required variable", func(t *testing.T) {
		config.Reset()

		var cfg requiredConfig
		err := config.Load(&cfg)
		require.ErrorIs(t, err, config.ErrParsing)
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})

	t.Run("invalid value", func(t *testing.T) {
		config.Reset()
		t.Setenv("CONFIG_TEST_BAD_PORT", "not-a-number")

		var cfg badConfig
		assert.ErrorIs(t, config.Load(&cfg), config.ErrParsing)
	})
}
