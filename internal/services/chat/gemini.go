package chat

import (
	"context"

	"github.com/culinai/chef/internal/httpclient"
	"github.com/culinai/chef/internal/services/gemini"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-3-pro-preview"

// ChatCreator is the subset of *genai.Chats the provider calls.
type ChatCreator interface {
	Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (*genai.Chat, error)
}

var _ ChatCreator = (*genai.Chats)(nil)

// GeminiProvider opens chats through the GenAI SDK.
type GeminiProvider struct {
	chats ChatCreator
	model string
}

func NewGeminiProvider(chats ChatCreator, model string) *GeminiProvider {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiProvider{chats: chats, model: model}
}

func (p *GeminiProvider) Open(ctx context.Context, persona string, history []Message) (Handle, error) {
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		contents = append(contents, genai.NewContentFromText(m.Text, genai.Role(m.Role)))
	}

	c, err := p.chats.Create(ctx, p.model, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(persona, genai.RoleUser),
	}, contents)
	if err != nil {
		return nil, err
	}
	return &geminiHandle{chat: c}, nil
}

type geminiHandle struct {
	chat *genai.Chat
}

func (h *geminiHandle) Send(ctx context.Context, text string) (string, error) {
	resp, err := h.chat.Send(httpclient.WithProvider(ctx, gemini.Provider), genai.NewPartFromText(text))
	if err != nil {
		return "", err
	}
	return gemini.ResponseText(resp), nil
}
