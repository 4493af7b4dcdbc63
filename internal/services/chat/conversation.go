package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	apperrors "github.com/culinai/chef/internal/errors"
	"github.com/culinai/chef/internal/i18n"
	"github.com/culinai/chef/internal/logger"
	"github.com/culinai/chef/internal/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Conversation pairs a Session with the transcript shown to the user and
// serializes turns.
type Conversation struct {
	mu         sync.Mutex
	session    *Session
	transcript *Transcript
	now        func() time.Time
}

func NewConversation(provider Provider, lang i18n.Language) *Conversation {
	return newConversation(provider, lang, time.Now)
}

func newConversation(provider Provider, lang i18n.Language, now func() time.Time) *Conversation {
	return &Conversation{
		session:    NewSession(provider, lang),
		transcript: NewTranscript(lang, now()),
		now:        now,
	}
}

// Messages returns the transcript in lang, restarting it with the localized
// welcome when the language changed.
func (c *Conversation) Messages(lang i18n.Language) []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.switchLanguage(lang)
	return c.transcript.Messages()
}

// Say runs one turn. The returned message is what was appended after the
// user's: the model reply, or the localized chat error when the turn
// failed. Failed turns stay in the transcript.
func (c *Conversation) Say(ctx context.Context, lang i18n.Language, text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, apperrors.NewValidationError("message is empty", "EMPTY_MESSAGE", "Type a question for the chef.")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.switchLanguage(lang)
	seed := c.transcript.Messages()
	c.transcript.Append(newMessage(RoleUser, text, c.now()))

	outcome := "success"
	defer func() {
		metrics.ChatTurnsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("language", string(lang)),
			attribute.String("outcome", outcome),
		))
	}()

	reply, err := c.session.Send(ctx, lang, text, seed)
	if err != nil {
		outcome = "error"
		slog.ErrorContext(ctx, "Chat turn failed", "language", string(lang), "error", err, logger.WithTraceContext(ctx))
		msg := newMessage(RoleModel, i18n.MessagesFor(lang).ChatError, c.now())
		c.transcript.Append(msg)
		return msg, err
	}

	msg := newMessage(RoleModel, reply, c.now())
	c.transcript.Append(msg)
	return msg, nil
}

func (c *Conversation) switchLanguage(lang i18n.Language) {
	if c.transcript.Language() != lang {
		c.transcript.Reset(lang, WelcomeMessage(lang, c.now()))
	}
}
