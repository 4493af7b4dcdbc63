package generation

import (
	"context"

	"github.com/culinai/chef/internal/services/ai"
)

// ProviderType selects the text-generation backend.
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOpenAI ProviderType = "openai"
	ProviderGroq   ProviderType = "groq"
)

// Strategy sends a compiled prompt to a provider and returns the raw reply
// text. Implementations either pass the typed schema to the provider or
// describe it in the prompt; both must return text that parses into the
// same recipe batch.
type Strategy interface {
	Name() string
	Complete(ctx context.Context, prompt ai.Prompt) (string, error)
}
