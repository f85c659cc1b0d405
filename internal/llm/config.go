// Package llm provides the generative model capability used by the AI estimator.
// Model tiers decouple callers from concrete model names.
package llm

import "fmt"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for cheap single-shot tasks
	TierLite ModelTier = "lite"
	// TierStandard is for structured output over text and images
	TierStandard ModelTier = "standard"
	// TierAdvanced is for harder multimodal reasoning
	TierAdvanced ModelTier = "advanced"
)

// ParseModelTier converts a config value into a ModelTier.
// An empty string selects TierStandard.
func ParseModelTier(s string) (ModelTier, error) {
	switch ModelTier(s) {
	case "":
		return TierStandard, nil
	case TierLite, TierStandard, TierAdvanced:
		return ModelTier(s), nil
	default:
		return "", fmt.Errorf("unknown model tier %q (want lite, standard or advanced)", s)
	}
}

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// defaultTemperature keeps estimates stable between identical requests.
const defaultTemperature float32 = 0.1

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: defaultTemperature,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}
