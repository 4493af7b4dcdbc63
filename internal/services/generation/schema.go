package generation

import (
	"context"

	apperrors "github.com/culinai/chef/internal/errors"
	"github.com/culinai/chef/internal/httpclient"
	"github.com/culinai/chef/internal/services/ai"
	"github.com/culinai/chef/internal/services/gemini"
	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-3-pro-preview"

// SchemaStrategy passes the typed schema to Gemini and asks for a JSON
// response.
type SchemaStrategy struct {
	models gemini.ContentGenerator
	model  string
}

// NewSchemaStrategy creates the typed-schema strategy. A nil generator means
// no API key was configured; Complete then fails with a configuration error.
func NewSchemaStrategy(models gemini.ContentGenerator, model string) *SchemaStrategy {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &SchemaStrategy{models: models, model: model}
}

func (s *SchemaStrategy) Name() string { return gemini.Provider }

func (s *SchemaStrategy) Complete(ctx context.Context, prompt ai.Prompt) (string, error) {
	if s.models == nil {
		return "", apperrors.NewConfigurationError("GEMINI_API_KEY is not set", "GEMINI_KEY_MISSING")
	}

	resp, err := s.models.GenerateContent(
		httpclient.WithProvider(ctx, gemini.Provider),
		s.model,
		genai.Text(prompt.Instruction),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   prompt.Schema,
		},
	)
	if err != nil {
		return "", apperrors.NewTransportError("Gemini request failed", "GEMINI_REQUEST_FAILED", err)
	}

	return gemini.ResponseText(resp), nil
}
