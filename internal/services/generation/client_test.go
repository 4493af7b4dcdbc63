package generation

import (
	"context"
	"testing"

	apperrors "github.com/culinai/chef/internal/errors"
	"github.com/culinai/chef/internal/i18n"
	"github.com/culinai/chef/internal/recipe"
	"github.com/culinai/chef/internal/services/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStrategy struct {
	reply  string
	err    error
	prompt ai.Prompt
	calls  int
}

func (s *stubStrategy) Name() string { return "stub" }

func (s *stubStrategy) Complete(_ context.Context, prompt ai.Prompt) (string, error) {
	s.calls++
	s.prompt = prompt
	return s.reply, s.err
}

func TestClient_Generate(t *testing.T) {
	stub := &stubStrategy{reply: "```json\n[{\"title\":\"Bibimbap\",\"ingredients\":[\"rice\"],\"instructions\":[\"mix\"]}]\n```"}
	prefs := recipe.DefaultPreferences()
	prefs.Ingredients = "rice, egg"

	batch, err := NewClient(stub).Generate(context.Background(), prefs, i18n.Korean)

	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "Bibimbap", batch[0].Title)
	assert.Equal(t, 1, stub.calls)
	assert.Contains(t, stub.prompt.Instruction, "1. Ingredients available: rice, egg")
	assert.Contains(t, stub.prompt.Instruction, "Output the entire response in Korean.")
}

func TestClient_GenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		stub    *stubStrategy
		wantErr apperrors.ErrorType
	}{
		{name: "provider failure", stub: &stubStrategy{err: apperrors.NewTransportError("down", "X", nil)}, wantErr: apperrors.ErrorTypeTransport},
		{name: "empty reply", stub: &stubStrategy{reply: ""}, wantErr: apperrors.ErrorTypeEmptyResponse},
		{name: "non json reply", stub: &stubStrategy{reply: "Here are your recipes!"}, wantErr: apperrors.ErrorTypeMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := recipe.DefaultPreferences()
			prefs.Ingredients = "tofu"

			_, err := NewClient(tt.stub).Generate(context.Background(), prefs, i18n.English)

			require.Error(t, err)
			assert.Equal(t, tt.wantErr, apperrors.TypeOf(err))
			assert.Equal(t, 1, tt.stub.calls, "no retry")
		})
	}
}

func TestNewStrategy(t *testing.T) {
	tests := []struct {
		provider string
		wantName string
	}{
		{provider: "gemini", wantName: "Gemini"},
		{provider: "", wantName: "Gemini"},
		{provider: "openai", wantName: "OpenAI"},
		{provider: "groq", wantName: "Groq"},
	}

	for _, tt := range tests {
		t.Run(tt.wantName+"/"+tt.provider, func(t *testing.T) {
			s := NewStrategy(configFor(tt.provider), nil, "openai-key", "groq-key")
			assert.Equal(t, tt.wantName, s.Name())
		})
	}
}
