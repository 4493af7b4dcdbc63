package generation

import (
	"github.com/culinai/chef/internal/config"
	"github.com/culinai/chef/internal/services/gemini"
)

// NewStrategy picks the strategy named by cfg.Provider. models may be nil
// when no Gemini key is configured.
func NewStrategy(cfg config.GenerationConfig, models gemini.ContentGenerator, openAIKey, groqKey string) Strategy {
	switch ProviderType(cfg.Provider) {
	case ProviderOpenAI:
		return NewOpenAITextStrategy(openAIKey, WithModel(cfg.Model))
	case ProviderGroq:
		return NewGroqTextStrategy(groqKey, WithModel(cfg.Model))
	default:
		return NewSchemaStrategy(models, cfg.Model)
	}
}
