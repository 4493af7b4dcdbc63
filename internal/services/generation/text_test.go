package generation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	apperrors "github.com/culinai/chef/internal/errors"
	"github.com/culinai/chef/internal/services/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatServer(t *testing.T, status int, body string, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) && assert.Len(t, req.Messages, 1) {
			assert.Equal(t, "user", req.Messages[0].Role)
			assert.True(t, strings.HasPrefix(req.Messages[0].Content, "Create 1 distinct"))
			assert.Contains(t, req.Messages[0].Content, `"recipes"`)
		}
		assert.Equal(t, "json_object", req.ResponseFormat.Type)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testPrompt() ai.Prompt {
	return ai.Prompt{Instruction: "Create 1 distinct and detailed cooking recipe(s)", Schema: ai.RecipeSchema}
}

func TestTextStrategy_Complete(t *testing.T) {
	var calls atomic.Int32
	srv := chatServer(t, http.StatusOK, `{"choices":[{"message":{"content":"[{\"title\":\"Soup\"}]"}}]}`, &calls)

	s := NewGroqTextStrategy("test-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	raw, err := s.Complete(context.Background(), testPrompt())

	require.NoError(t, err)
	assert.Equal(t, `[{"title":"Soup"}]`, raw)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "Groq", s.Name())
}

func TestTextStrategy_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr apperrors.ErrorType
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`, wantErr: apperrors.ErrorTypeTransport},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{}`, wantErr: apperrors.ErrorTypeTransport},
		{name: "bad envelope", status: http.StatusOK, body: `<html>`, wantErr: apperrors.ErrorTypeMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := chatServer(t, tt.status, tt.body, &calls)

			s := NewOpenAITextStrategy("test-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
			_, err := s.Complete(context.Background(), testPrompt())

			require.Error(t, err)
			assert.Equal(t, tt.wantErr, apperrors.TypeOf(err))
		})
	}
}

func TestTextStrategy_NoChoicesIsEmpty(t *testing.T) {
	var calls atomic.Int32
	srv := chatServer(t, http.StatusOK, `{"choices":[]}`, &calls)

	s := NewOpenAITextStrategy("test-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	raw, err := s.Complete(context.Background(), testPrompt())

	require.NoError(t, err)
	assert.Empty(t, raw)

	_, err = ParseBatch(raw)
	assert.Equal(t, apperrors.ErrorTypeEmptyResponse, apperrors.TypeOf(err))
}

func TestTextStrategy_MissingKeyMakesNoRequest(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	s := NewGroqTextStrategy("", WithBaseURL(srv.URL))
	_, err := s.Complete(context.Background(), testPrompt())

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeConfiguration, apperrors.TypeOf(err))
	assert.Contains(t, err.Error(), "GROQ_API_KEY")
	assert.Zero(t, calls.Load())
}
