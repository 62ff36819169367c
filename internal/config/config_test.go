package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "ventilatorhaz.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.Model)
	assert.Equal(t, int64(2000), cfg.Anthropic.MaxTokens)
	assert.Equal(t, 20, cfg.Anthropic.RequestsPerMinute)
	assert.Empty(t, cfg.Anthropic.Key)
	assert.Empty(t, cfg.Library.BenchmarkPath)
	assert.Equal(t, 30, cfg.Extract.HTTPTimeoutSecs)
	assert.Equal(t, int64(20*1024*1024), cfg.Extract.MaxPDFBytes)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("VENTILATORHAZ_STORE_DRIVER", "postgres")
	t.Setenv("VENTILATORHAZ_ANTHROPIC_KEY", "sk-test")
	t.Setenv("VENTILATORHAZ_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "sk-test", cfg.Anthropic.Key)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestInitLogger(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	})

	t.Run("console format", func(t *testing.T) {
		require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	})

	t.Run("bad level", func(t *testing.T) {
		assert.Error(t, InitLogger(LogConfig{Level: "szuperbő", Format: "json"}))
	})
}
