package chat

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/culinai/chef/internal/errors"
	"github.com/culinai/chef/internal/i18n"
	"github.com/culinai/chef/internal/services/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHandle struct {
	persona string
	replies []string
	err     error
	sent    []string
}

func (h *fakeHandle) Send(_ context.Context, text string) (string, error) {
	h.sent = append(h.sent, text)
	if h.err != nil {
		return "", h.err
	}
	if len(h.replies) == 0 {
		return "", nil
	}
	reply := h.replies[0]
	h.replies = h.replies[1:]
	return reply, nil
}

type fakeProvider struct {
	opened  []*fakeHandle
	seeds   [][]Message
	openErr error
	replies []string
	sendErr error
}

func (p *fakeProvider) Open(_ context.Context, persona string, history []Message) (Handle, error) {
	if p.openErr != nil {
		return nil, p.openErr
	}
	h := &fakeHandle{persona: persona, replies: append([]string(nil), p.replies...), err: p.sendErr}
	p.opened = append(p.opened, h)
	p.seeds = append(p.seeds, history)
	return h, nil
}

func TestSession_ReusesHandle(t *testing.T) {
	provider := &fakeProvider{replies: []string{"Use butter.", "Yes, salt it."}}
	s := NewSession(provider, i18n.English)

	first, err := s.Send(context.Background(), i18n.English, "How do I sear?", nil)
	require.NoError(t, err)
	second, err := s.Send(context.Background(), i18n.English, "Salt first?", nil)
	require.NoError(t, err)

	assert.Equal(t, "Use butter.", first)
	assert.Equal(t, "Yes, salt it.", second)
	require.Len(t, provider.opened, 1)
	assert.Equal(t, []string{"How do I sear?", "Salt first?"}, provider.opened[0].sent)
}

func TestSession_LanguageSwitchOpensNewHandle(t *testing.T) {
	provider := &fakeProvider{replies: []string{"ok"}}
	s := NewSession(provider, i18n.English)

	_, err := s.Send(context.Background(), i18n.English, "hello", nil)
	require.NoError(t, err)

	seed := []Message{WelcomeMessage(i18n.Korean, fixedNow())}
	_, err = s.Send(context.Background(), i18n.Korean, "안녕하세요", seed)
	require.NoError(t, err)

	require.Len(t, provider.opened, 2)
	assert.Equal(t, ai.ChefPersona(i18n.English), provider.opened[0].persona)
	assert.Equal(t, ai.ChefPersona(i18n.Korean), provider.opened[1].persona)
	assert.Equal(t, []string{"안녕하세요"}, provider.opened[1].sent)
	assert.Empty(t, provider.opened[0].sent[1:], "old handle is not used after the switch")
	assert.Equal(t, seed, provider.seeds[1])
	assert.Equal(t, i18n.Korean, s.Language())
}

func TestSession_EmptyReplyFallback(t *testing.T) {
	s := NewSession(&fakeProvider{}, i18n.English)

	reply, err := s.Send(context.Background(), i18n.English, "?", nil)

	require.NoError(t, err)
	assert.Equal(t, FallbackReply, reply)
}

func TestSession_Errors(t *testing.T) {
	t.Run("open fails", func(t *testing.T) {
		provider := &fakeProvider{openErr: errors.New("invalid history")}
		s := NewSession(provider, i18n.English)

		_, err := s.Send(context.Background(), i18n.English, "hi", nil)
		assert.Equal(t, apperrors.ErrorTypeChatUnavailable, apperrors.TypeOf(err))

		provider.openErr = nil
		_, err = s.Send(context.Background(), i18n.English, "hi", nil)
		require.NoError(t, err)
		assert.Len(t, provider.opened, 1, "a failed open leaves no handle behind")
	})

	t.Run("send fails keeps handle", func(t *testing.T) {
		provider := &fakeProvider{sendErr: errors.New("503")}
		s := NewSession(provider, i18n.English)

		_, err := s.Send(context.Background(), i18n.English, "hi", nil)
		assert.Equal(t, apperrors.ErrorTypeChatUnavailable, apperrors.TypeOf(err))
		_, err = s.Send(context.Background(), i18n.English, "again", nil)
		assert.Error(t, err)
		assert.Len(t, provider.opened, 1)
	})

	t.Run("no provider", func(t *testing.T) {
		_, err := NewSession(nil, i18n.English).Send(context.Background(), i18n.English, "hi", nil)
		assert.Equal(t, apperrors.ErrorTypeChatUnavailable, apperrors.TypeOf(err))
	})
}
