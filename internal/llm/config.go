// Package llm provides centralized LLM configuration and client abstractions
// for the coaching engine, including tool-calling conversation support.
package llm

// ModelTier represents the capability level of a model
type ModelTier string

const (
	// TierPrimary is the default model for agentic coaching
	TierPrimary ModelTier = "primary"
	// TierFallback is the cheaper model tried when the primary fails
	TierFallback ModelTier = "fallback"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierPrimary:  "gemini-2.5-flash",
			TierFallback: "gemini-2.5-flash-lite",
		},
	}
}

// GetModel returns the model name for a given tier, falling back to the
// primary model when the tier has no explicit entry
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierPrimary]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider: c.Provider,
		Models:   make(map[ModelTier]string, len(c.Models)+1),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
