package config_test

import (
	"testing"

	"palette_api/pkg/config"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Address)
	require.Equal(t, config.ModeData, cfg.Mode)
	require.False(t, cfg.Enabled, "endpoint ships disabled")
	require.Equal(t, 10, cfg.RateLimit.Max)
	require.Equal(t, 60, cfg.RateLimit.WindowMinutes)
	require.Equal(t, 10, cfg.RateLimit.SweepMinutes)
	require.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	require.Empty(t, cfg.Mongo.URI)
}

func TestOverrides(t *testing.T) {
	t.Setenv("DIAGNOSIS_MODE", "image")
	t.Setenv("DIAGNOSIS_ENABLED", "true")
	t.Setenv("RATE_LIMIT_MAX", "3")
	t.Setenv("RATE_LIMIT_WINDOW_MINUTES", "5")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, config.ModeImage, cfg.Mode)
	require.True(t, cfg.Enabled)
	require.Equal(t, 3, cfg.RateLimit.Max)
	require.Equal(t, 5, cfg.RateLimit.WindowMinutes)
	require.Equal(t, "sk-test", cfg.OpenAI.APIKey)
}

func TestRejectsUnknownMode(t *testing.T) {
	t.Setenv("DIAGNOSIS_MODE", "hybrid")

	_, err := config.Load()
	require.Error(t, err)
}
