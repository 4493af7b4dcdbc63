package api

import (
	"net/http"
	"strings"

	apperrors "github.com/culinai/chef/internal/errors"
	"github.com/culinai/chef/internal/history"
	"github.com/culinai/chef/internal/i18n"
	"github.com/culinai/chef/internal/metrics"
	"github.com/culinai/chef/internal/middleware"
	"github.com/culinai/chef/internal/recipe"
	"github.com/culinai/chef/internal/services/imagegen"
)

type OptionsResponse struct {
	Language i18n.Language                `json:"language"`
	Options  map[i18n.Group][]i18n.Option `json:"options"`
	Messages i18n.Messages                `json:"messages"`
	Defaults recipe.Preferences           `json:"defaults"`
}

func (s *Server) HandleOptions(w http.ResponseWriter, r *http.Request) {
	lang := i18n.Parse(r.URL.Query().Get("language"))
	writeJSON(w, http.StatusOK, OptionsResponse{
		Language: lang,
		Options:  i18n.Options(lang),
		Messages: i18n.MessagesFor(lang),
		Defaults: recipe.DefaultPreferences(),
	})
}

type GenerateRequest struct {
	Language    string             `json:"language"`
	Preferences recipe.Preferences `json:"preferences"`
}

type GenerateResponse struct {
	Recipes       recipe.Batch `json:"recipes"`
	HistoryItemID string       `json:"historyItemId"`
}

// HandleGenerate runs one generation for the calling device. When the same
// device starts another generation before this one returns, this result is
// dropped with 409 and not written to history.
func (s *Server) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req GenerateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, i18n.English, featureNone, err)
		return
	}
	lang := i18n.Parse(req.Language)

	deviceID, err := middleware.RequireDeviceID(ctx)
	if err != nil {
		writeError(w, r, lang, featureNone, err)
		return
	}

	prefs := req.Preferences.Normalize()
	if err := prefs.Validate(); err != nil {
		writeError(w, r, lang, featureGenerate, err)
		return
	}

	tok := s.tracker.Begin(deviceID)
	defer s.tracker.Done(tok)

	batch, err := s.generator.Generate(ctx, prefs, lang)
	if !s.tracker.Current(tok) {
		metrics.SupersededGenerations.Add(ctx, 1)
		writeError(w, r, lang, featureGenerate, apperrors.NewSupersededError())
		return
	}
	if err != nil {
		writeError(w, r, lang, featureGenerate, err)
		return
	}

	userID, _ := middleware.GetUserID(ctx)
	item := s.history.Record(ctx, history.Owner{DeviceID: deviceID, UserID: userID}, lang, batch)

	writeJSON(w, http.StatusOK, GenerateResponse{Recipes: batch, HistoryItemID: item.ID})
}

type PreviewRequest struct {
	Language    string `json:"language"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Size        string `json:"size"`
}

type PreviewResponse struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
	DataURL  string `json:"dataUrl"`
}

func (s *Server) HandlePreview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, i18n.English, featureNone, err)
		return
	}
	lang := i18n.Parse(req.Language)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		writeError(w, r, lang, featurePreview,
			apperrors.NewValidationError("title is required", "TITLE_REQUIRED", "Pass the recipe title to preview."))
		return
	}

	preview, err := s.previewer.RenderPreview(r.Context(), title, strings.TrimSpace(req.Description), imagegen.Size(req.Size))
	if err != nil {
		writeError(w, r, lang, featurePreview, err)
		return
	}

	writeJSON(w, http.StatusOK, PreviewResponse{
		MIMEType: preview.MIMEType,
		Data:     preview.Data,
		DataURL:  preview.DataURL(),
	})
}
