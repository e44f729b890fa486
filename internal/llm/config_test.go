package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(TierPrimary))
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GetModel(TierFallback))
}

func TestGetModelUnknownTierFallsBackToPrimary(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, cfg.GetModel(TierPrimary), cfg.GetModel(ModelTier("experimental")))
}

func TestWithModel(t *testing.T) {
	cfg := DefaultConfig().WithModel(TierPrimary, "gemini-2.5-pro")

	assert.Equal(t, "gemini-2.5-pro", cfg.GetModel(TierPrimary))
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GetModel(TierFallback))
}

func TestWithModelDoesNotMutateOriginal(t *testing.T) {
	base := DefaultConfig()
	_ = base.WithModel(TierFallback, "gemini-2.0-flash")

	assert.Equal(t, "gemini-2.5-flash-lite", base.GetModel(TierFallback))
}
