package api

import (
	"net/http"

	apperrors "github.com/culinai/chef/internal/errors"
	"github.com/culinai/chef/internal/i18n"
	"github.com/culinai/chef/internal/middleware"
	"github.com/culinai/chef/internal/services/chat"
)

type TranscriptResponse struct {
	Language   i18n.Language  `json:"language"`
	Transcript []chat.Message `json:"transcript"`
}

func (s *Server) HandleChatTranscript(w http.ResponseWriter, r *http.Request) {
	lang := i18n.Parse(r.URL.Query().Get("language"))

	deviceID, err := middleware.RequireDeviceID(r.Context())
	if err != nil {
		writeError(w, r, lang, featureNone, err)
		return
	}

	conv := s.chats.Get(deviceID, lang)
	writeJSON(w, http.StatusOK, TranscriptResponse{Language: lang, Transcript: conv.Messages(lang)})
}

type ChatRequest struct {
	Language string `json:"language"`
	Message  string `json:"message"`
}

type ChatResponse struct {
	Reply      chat.Message   `json:"reply"`
	Failed     bool           `json:"failed"`
	Transcript []chat.Message `json:"transcript"`
}

// HandleChatSend runs one chat turn. A provider failure is not an HTTP
// error: the localized apology is part of the transcript and the response
// is marked failed.
func (s *Server) HandleChatSend(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, i18n.English, featureNone, err)
		return
	}
	lang := i18n.Parse(req.Language)

	deviceID, err := middleware.RequireDeviceID(r.Context())
	if err != nil {
		writeError(w, r, lang, featureNone, err)
		return
	}

	conv := s.chats.Get(deviceID, lang)
	reply, err := conv.Say(r.Context(), lang, req.Message)
	if err != nil && !apperrors.Is(err, apperrors.ErrorTypeChatUnavailable) {
		writeError(w, r, lang, featureChat, err)
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Reply:      reply,
		Failed:     err != nil,
		Transcript: conv.Messages(lang),
	})
}
