// Package chat holds the "Chef Gemini" conversation: a provider session
// bound to one language, the transcript the caller displays, and a bounded
// registry of both per device.
package chat

import (
	"time"

	"github.com/culinai/chef/internal/i18n"
	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

func newMessage(role Role, text string, at time.Time) Message {
	return Message{ID: uuid.NewString(), Role: role, Text: text, Timestamp: at}
}

// WelcomeMessage is the localized greeting that opens every transcript.
func WelcomeMessage(lang i18n.Language, at time.Time) Message {
	return Message{
		ID:        "welcome-" + string(lang),
		Role:      RoleModel,
		Text:      i18n.MessagesFor(lang).ChatWelcome,
		Timestamp: at,
	}
}

// Transcript is the ordered list of displayed messages. It is not safe for
// concurrent use; Conversation guards it.
type Transcript struct {
	lang     i18n.Language
	messages []Message
}

func NewTranscript(lang i18n.Language, at time.Time) *Transcript {
	t := &Transcript{}
	t.Reset(lang, WelcomeMessage(lang, at))
	return t
}

// Reset discards every message and starts over with welcome.
func (t *Transcript) Reset(lang i18n.Language, welcome Message) {
	t.lang = lang
	t.messages = []Message{welcome}
}

func (t *Transcript) Language() i18n.Language {
	return t.lang
}

func (t *Transcript) Append(m Message) {
	t.messages = append(t.messages, m)
}

// Messages returns a copy.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}
