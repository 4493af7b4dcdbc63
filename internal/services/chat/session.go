package chat

import (
	"context"
	"fmt"

	apperrors "github.com/culinai/chef/internal/errors"
	"github.com/culinai/chef/internal/i18n"
	"github.com/culinai/chef/internal/services/ai"
)

// FallbackReply is returned when the provider answers with no text.
const FallbackReply = "I'm sorry, I didn't catch that."

// Provider opens a stateful chat on the model side.
type Provider interface {
	Open(ctx context.Context, persona string, history []Message) (Handle, error)
}

// Handle is one open provider chat. It remembers its own turns.
type Handle interface {
	Send(ctx context.Context, text string) (string, error)
}

// Session binds a provider chat to one language. Switching language
// discards the chat and opens a new one with the matching persona.
type Session struct {
	provider Provider
	lang     i18n.Language
	handle   Handle
}

// NewSession creates a session with no open chat. provider may be nil when
// no API key is configured; Send then fails.
func NewSession(provider Provider, lang i18n.Language) *Session {
	return &Session{provider: provider, lang: lang}
}

func (s *Session) Language() i18n.Language {
	return s.lang
}

// Send forwards text and returns the reply. When a new chat has to be
// opened it is seeded with seed, the caller's transcript before this turn.
// Nothing is appended to any transcript here.
func (s *Session) Send(ctx context.Context, lang i18n.Language, text string, seed []Message) (string, error) {
	if s.handle == nil || lang != s.lang {
		s.handle = nil
		s.lang = lang

		if s.provider == nil {
			return "", apperrors.NewChatUnavailableError(
				apperrors.NewConfigurationError("GEMINI_API_KEY is not set", "GEMINI_KEY_MISSING"))
		}
		handle, err := s.provider.Open(ctx, ai.ChefPersona(lang), seed)
		if err != nil {
			return "", apperrors.NewChatUnavailableError(fmt.Errorf("opening chat: %w", err))
		}
		s.handle = handle
	}

	reply, err := s.handle.Send(ctx, text)
	if err != nil {
		return "", apperrors.NewChatUnavailableError(err)
	}
	if reply == "" {
		return FallbackReply, nil
	}
	return reply, nil
}
