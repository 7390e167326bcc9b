package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"planai/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PLANAI_HTTP_ADDR", "PLANAI_LOG_LEVEL", "PLANAI_PROVIDER", "GOOGLE_API_KEY", "OPENAI_API_KEY",
		"PLANAI_MODEL", "PLANAI_OPENAI_BASE_URL", "PLANAI_TEMPERATURE", "PLANAI_GENERATION_TIMEOUT",
		"PLANAI_MAX_RETRIES", "PLANAI_STRICT_PLAN", "PLANAI_CORS_ORIGINS", "PLANAI_CORS_ORIGIN_PATTERNS",
		"PLANAI_DB_DSN", "PLANAI_REDIS_ADDR", "PLANAI_CACHE_TTL", "GOOGLE_MAPS_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

// TestLoad_defaults verifies the fallbacks when only the Gemini key is set.
func TestLoad_defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "g-key")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, ":8000", cfg.HTTP.Addr)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, config.ProviderGemini, cfg.AI.Provider)
	require.Equal(t, "g-key", cfg.AI.APIKey())
	require.InDelta(t, 0.4, cfg.AI.Temperature, 1e-6)
	require.Equal(t, 60*time.Second, cfg.AI.Timeout)
	require.Zero(t, cfg.AI.MaxRetries)
	require.False(t, cfg.AI.Strict)
	require.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, cfg.CORS.Origins)
	require.Empty(t, cfg.CORS.Patterns)
	require.Equal(t, time.Hour, cfg.Cache.TTL)
	require.Empty(t, cfg.DB.DSN)
	require.Empty(t, cfg.Redis.Addr)
}

// TestLoad_overrides verifies that values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLANAI_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "o-key")
	t.Setenv("PLANAI_HTTP_ADDR", ":9090")
	t.Setenv("PLANAI_GENERATION_TIMEOUT", "15s")
	t.Setenv("PLANAI_MAX_RETRIES", "2")
	t.Setenv("PLANAI_STRICT_PLAN", "true")
	t.Setenv("PLANAI_CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("PLANAI_CORS_ORIGIN_PATTERNS", `^https://.*\.vercel\.app$`)
	t.Setenv("PLANAI_CACHE_TTL", "10m")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, config.ProviderOpenAI, cfg.AI.Provider)
	require.Equal(t, "o-key", cfg.AI.APIKey())
	require.Equal(t, ":9090", cfg.HTTP.Addr)
	require.Equal(t, 15*time.Second, cfg.AI.Timeout)
	require.Equal(t, 2, cfg.AI.MaxRetries)
	require.True(t, cfg.AI.Strict)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORS.Origins)
	require.Len(t, cfg.CORS.Patterns, 1)
	require.True(t, cfg.CORS.Patterns[0].MatchString("https://plan-ai.vercel.app"))
	require.Equal(t, 10*time.Minute, cfg.Cache.TTL)
}

// TestLoad_missingCredential verifies the error names the missing variable.
func TestLoad_missingCredential(t *testing.T) {
	clearEnv(t)

	_, err := config.Load()
	require.ErrorContains(t, err, "GOOGLE_API_KEY")

	t.Setenv("PLANAI_PROVIDER", "openai")
	t.Setenv("GOOGLE_API_KEY", "g-key")
	_, err = config.Load()
	require.ErrorContains(t, err, "OPENAI_API_KEY")
}

func TestLoad_rejectsUnknownProviderAndBadPattern(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLANAI_PROVIDER", "claude")
	t.Setenv("PLANAI_CORS_ORIGIN_PATTERNS", "^https://(")

	_, err := config.Load()

	require.ErrorContains(t, err, "PLANAI_PROVIDER")
	require.ErrorContains(t, err, "PLANAI_CORS_ORIGIN_PATTERNS")
}
