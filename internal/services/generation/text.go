package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/culinai/chef/internal/errors"
	"github.com/culinai/chef/internal/httpclient"
	"github.com/culinai/chef/internal/services/ai"
)

const (
	OpenAIBaseURL = "https://api.openai.com/v1"
	GroqBaseURL   = "https://api.groq.com/openai/v1"

	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultGroqModel   = "llama-3.3-70b-versatile"
)

// TextStrategy talks to any OpenAI-compatible chat completions
// endpoint. The schema is described in the prompt and the reply is parsed
// as plain text.
type TextStrategy struct {
	name    string
	baseURL string
	apiKey  string
	keyEnv  string
	model   string
	client  *http.Client
}

// Option configures a TextStrategy.
type Option func(*TextStrategy)

// WithBaseURL points the strategy at another endpoint, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(s *TextStrategy) { s.baseURL = strings.TrimSuffix(u, "/") }
}

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(s *TextStrategy) {
		if model != "" {
			s.model = model
		}
	}
}

// WithHTTPClient replaces the instrumented default client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *TextStrategy) { s.client = c }
}

// NewOpenAITextStrategy creates a plain-text strategy against OpenAI.
func NewOpenAITextStrategy(apiKey string, opts ...Option) *TextStrategy {
	return newChatCompletions("OpenAI", OpenAIBaseURL, apiKey, "OPENAI_API_KEY", DefaultOpenAIModel, opts)
}

// NewGroqTextStrategy creates a plain-text strategy against Groq.
func NewGroqTextStrategy(apiKey string, opts ...Option) *TextStrategy {
	return newChatCompletions("Groq", GroqBaseURL, apiKey, "GROQ_API_KEY", DefaultGroqModel, opts)
}

func newChatCompletions(name, baseURL, apiKey, keyEnv, model string, opts []Option) *TextStrategy {
	s := &TextStrategy{
		name:    name,
		baseURL: baseURL,
		apiKey:  apiKey,
		keyEnv:  keyEnv,
		model:   model,
		client:  httpclient.Default,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TextStrategy) Name() string { return s.name }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *TextStrategy) Complete(ctx context.Context, prompt ai.Prompt) (string, error) {
	if s.apiKey == "" {
		return "", apperrors.NewConfigurationError(s.keyEnv+" is not set", "API_KEY_MISSING")
	}

	body, err := json.Marshal(chatRequest{
		Model:          s.model,
		Messages:       []chatMessage{{Role: "user", Content: prompt.PlainText()}},
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return "", apperrors.NewInternalError("encoding chat request", "ENCODE_FAILED", err)
	}

	httpReq, err := http.NewRequestWithContext(httpclient.WithProvider(ctx, s.name), http.MethodPost,
		s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", apperrors.NewInternalError("building chat request", "REQUEST_BUILD_FAILED", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", apperrors.NewTransportError(s.name+" request failed", "PROVIDER_REQUEST_FAILED", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewTransportError(s.name+" response could not be read", "PROVIDER_READ_FAILED", err)
	}

	if resp.StatusCode >= 400 {
		return "", apperrors.NewTransportError(s.name+" request failed", "PROVIDER_STATUS",
			fmt.Errorf("%s API error (status %d): %s", s.name, resp.StatusCode, string(respBody)))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", apperrors.NewMalformedResponseError(s.name+" returned an unreadable envelope", "MALFORMED_ENVELOPE", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", nil
	}

	return chatResp.Choices[0].Message.Content, nil
}
