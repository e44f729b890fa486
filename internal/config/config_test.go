package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
		"gemini_api_key": "test-key",
		"database_url": "postgres://localhost/parfolio",
		"primary_model": "gemini-2.5-pro",
		"max_agent_turns": 5
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.PrimaryModel)
	assert.Equal(t, 5, cfg.MaxAgentTurns)
	assert.Empty(t, cfg.FallbackModel)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestValidateRejectsNegativeLimits(t *testing.T) {
	cfg := &Config{MaxAgentTurns: -1}
	assert.Error(t, cfg.Validate())

	cfg = &Config{CacheTTLHours: -2}
	assert.Error(t, cfg.Validate())
}

func TestFromEnv(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "env-key")
	t.Setenv("GOOGLE_SEARCH_API_KEY", "search-key")
	t.Setenv("GOOGLE_SEARCH_ENGINE_ID", "cx-123")
	t.Setenv("MAX_AGENT_TURNS", "6")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.GeminiAPIKey)
	assert.Equal(t, "cx-123", cfg.SearchEngineID)
	assert.Equal(t, 6, cfg.MaxAgentTurns)
}

func TestFromEnvRejectsBadInt(t *testing.T) {
	t.Setenv("CACHE_MAX_ENTRIES", "lots")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	base := Config{GeminiAPIKey: "flag-key", MaxAgentTurns: 3}
	merged := base.Merge(Config{
		GeminiAPIKey:  "file-key",
		DatabaseURL:   "postgres://localhost/parfolio",
		MaxAgentTurns: 9,
	})

	assert.Equal(t, "flag-key", merged.GeminiAPIKey, "explicit value wins")
	assert.Equal(t, "postgres://localhost/parfolio", merged.DatabaseURL, "empty value filled")
	assert.Equal(t, 3, merged.MaxAgentTurns)
}

func TestNewJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "12")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "super-secret", cfg.Secret)
	assert.Equal(t, 12, cfg.ExpirationHours)
}

func TestNewJWTConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.ExpirationHours)
}

func TestNewJWTConfigErrors(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := NewJWTConfig()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "s")
	t.Setenv("JWT_EXPIRATION_HOURS", "zero")
	_, err = NewJWTConfig()
	assert.Error(t, err)

	t.Setenv("JWT_EXPIRATION_HOURS", "0")
	_, err = NewJWTConfig()
	assert.Error(t, err)
}
