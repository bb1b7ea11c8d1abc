package ai

import "github.com/jiqtui/jiq/internal/config"

// NewProvider selects and constructs the Provider for cfg's active
// backend (spec.md §6's four supported backends). Returns nil if the
// provider is unknown or unconfigured; callers surface that as
// AiState.configured == false rather than failing to start.
func NewProvider(cfg config.Config) Provider {
	switch cfg.AI.Provider {
	case config.ProviderAnthropic:
		maxTokens := cfg.AI.Anthropic.MaxTokens
		if maxTokens <= 0 {
			maxTokens = 1024
		}
		return &AnthropicProvider{APIKey: cfg.AI.Anthropic.APIKey, Model: cfg.AI.Anthropic.Model, MaxTokens: maxTokens}
	case config.ProviderOpenAI:
		return &OpenAIProvider{APIKey: cfg.AI.OpenAI.APIKey, Model: cfg.AI.OpenAI.Model}
	case config.ProviderGemini:
		return &GeminiProvider{APIKey: cfg.AI.Gemini.APIKey, Model: cfg.AI.Gemini.Model}
	case config.ProviderBedrock:
		return &BedrockProvider{Region: cfg.AI.Bedrock.Region, Model: cfg.AI.Bedrock.Model, Profile: cfg.AI.Bedrock.Profile}
	default:
		return nil
	}
}
