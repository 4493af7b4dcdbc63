package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	apperrors "github.com/culinai/chef/internal/errors"
	"github.com/culinai/chef/internal/history"
	"github.com/culinai/chef/internal/i18n"
	"github.com/culinai/chef/internal/localstate"
	"github.com/culinai/chef/internal/middleware"
	"github.com/culinai/chef/internal/recipe"
	"github.com/culinai/chef/internal/services/ai"
	"github.com/culinai/chef/internal/services/chat"
	"github.com/culinai/chef/internal/services/generation"
	"github.com/culinai/chef/internal/services/imagegen"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generatorFunc func(ctx context.Context, prefs recipe.Preferences, lang i18n.Language) (recipe.Batch, error)

func (f generatorFunc) Generate(ctx context.Context, prefs recipe.Preferences, lang i18n.Language) (recipe.Batch, error) {
	return f(ctx, prefs, lang)
}

type fakePreviewer struct {
	preview imagegen.Preview
	err     error
	size    imagegen.Size
}

func (f *fakePreviewer) RenderPreview(_ context.Context, _, _ string, size imagegen.Size) (imagegen.Preview, error) {
	f.size = size
	return f.preview, f.err
}

type fakeChatProvider struct {
	reply string
	err   error
}

func (p *fakeChatProvider) Open(context.Context, string, []chat.Message) (chat.Handle, error) {
	return p, nil
}

func (p *fakeChatProvider) Send(context.Context, string) (string, error) {
	return p.reply, p.err
}

func batch(title string) recipe.Batch {
	return recipe.Batch{{
		Title:            title,
		Description:      "A dish.",
		Ingredients:      []string{"Tofu"},
		Instructions:     []string{"Cook"},
		VideoSearchQuery: title + " recipe",
	}}
}

type testEnv struct {
	router    http.Handler
	previewer *fakePreviewer
	chat      *fakeChatProvider
	state     localstate.Store
}

func newTestEnv(t *testing.T, gen Generator) *testEnv {
	t.Helper()

	state, err := localstate.NewFileStore(t.TempDir())
	require.NoError(t, err)

	provider := &fakeChatProvider{reply: "Use silken tofu."}
	chats, err := chat.NewRegistry(provider, 10)
	require.NoError(t, err)

	previewer := &fakePreviewer{preview: imagegen.Preview{MIMEType: "image/png", Data: "aGk="}}
	srv := NewServer(gen, previewer, chats, history.NewStore(history.NewLocal(state), nil), state)

	r := chi.NewRouter()
	r.Use(middleware.DeviceID)
	r.Use(middleware.OptionalAuth(middleware.AuthConfig{}))
	srv.Routes(r)

	return &testEnv{router: r, previewer: previewer, chat: provider, state: state}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.DeviceIDHeader, "device-1")
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}

func staticGenerator(b recipe.Batch, err error) Generator {
	return generatorFunc(func(context.Context, recipe.Preferences, i18n.Language) (recipe.Batch, error) {
		return b, err
	})
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, staticGenerator(nil, nil))
	rr := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
}

func TestHandleOptions(t *testing.T) {
	env := newTestEnv(t, staticGenerator(nil, nil))

	rr := env.do(t, http.MethodGet, "/api/options?language=ko", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[OptionsResponse](t, rr)
	assert.Equal(t, i18n.Korean, resp.Language)
	assert.Len(t, resp.Options, len(i18n.Groups()))
	assert.Equal(t, i18n.MessagesFor(i18n.Korean), resp.Messages)
	assert.Equal(t, 1, resp.Defaults.NumDishes)
}

func TestHandleGenerate_RecordsHistory(t *testing.T) {
	var gotLang i18n.Language
	var gotPrefs recipe.Preferences
	env := newTestEnv(t, generatorFunc(func(_ context.Context, prefs recipe.Preferences, lang i18n.Language) (recipe.Batch, error) {
		gotPrefs, gotLang = prefs, lang
		return batch("Mapo Tofu"), nil
	}))

	rr := env.do(t, http.MethodPost, "/api/recipes/generate", GenerateRequest{
		Language:    "zh-TW",
		Preferences: recipe.Preferences{Ingredients: "  Tofu, Ground Pork  "},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decode[GenerateResponse](t, rr)
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Mapo Tofu", resp.Recipes[0].Title)
	assert.NotEmpty(t, resp.HistoryItemID)

	assert.Equal(t, i18n.TraditionalChinese, gotLang)
	assert.Equal(t, "Tofu, Ground Pork", gotPrefs.Ingredients)
	assert.Equal(t, 1, gotPrefs.NumDishes)

	listing := decode[history.Listing](t, env.do(t, http.MethodGet, "/api/history", nil))
	require.Len(t, listing.Local, 1)
	assert.Equal(t, resp.HistoryItemID, listing.Local[0].ID)
	assert.Equal(t, "Mapo Tofu", listing.Local[0].SummaryTitle)
	assert.Empty(t, listing.Remote)
}

func TestHandleGenerate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		genErr     error
		wantStatus int
		wantType   apperrors.ErrorType
	}{
		{
			name:       "missing ingredients",
			body:       GenerateRequest{Preferences: recipe.Preferences{Ingredients: "   "}},
			wantStatus: http.StatusBadRequest,
			wantType:   apperrors.ErrorTypeValidation,
		},
		{
			name:       "too many dishes",
			body:       GenerateRequest{Preferences: recipe.Preferences{Ingredients: "Eggs", NumDishes: 4}},
			wantStatus: http.StatusBadRequest,
			wantType:   apperrors.ErrorTypeValidation,
		},
		{
			name:       "missing credential",
			body:       GenerateRequest{Preferences: recipe.Preferences{Ingredients: "Eggs"}},
			genErr:     apperrors.NewConfigurationError("GEMINI_API_KEY is not set", "MISSING_API_KEY"),
			wantStatus: http.StatusServiceUnavailable,
			wantType:   apperrors.ErrorTypeConfiguration,
		},
		{
			name:       "transport",
			body:       GenerateRequest{Preferences: recipe.Preferences{Ingredients: "Eggs"}},
			genErr:     apperrors.NewTransportError("generation request failed", "GENERATION_FAILED", errors.New("connection reset")),
			wantStatus: http.StatusBadGateway,
			wantType:   apperrors.ErrorTypeTransport,
		},
		{
			name:       "malformed",
			body:       GenerateRequest{Preferences: recipe.Preferences{Ingredients: "Eggs"}},
			genErr:     apperrors.NewMalformedResponseError("response is not JSON", "MALFORMED_JSON", nil),
			wantStatus: http.StatusBadGateway,
			wantType:   apperrors.ErrorTypeMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, staticGenerator(nil, tt.genErr))

			rr := env.do(t, http.MethodPost, "/api/recipes/generate", tt.body)
			require.Equal(t, tt.wantStatus, rr.Code)

			resp := decode[errorBody](t, rr)
			assert.Equal(t, tt.wantType, resp.Error.Type)
			assert.Equal(t, i18n.MessagesFor(i18n.English).ErrorGen, resp.Error.Message)
			assert.NotEmpty(t, resp.Error.Detail)

			listing := decode[history.Listing](t, env.do(t, http.MethodGet, "/api/history", nil))
			assert.Empty(t, listing.Local, "failed generations are not recorded")
		})
	}
}

type rawStrategy string

func (s rawStrategy) Name() string { return "Stub" }

func (s rawStrategy) Complete(context.Context, ai.Prompt) (string, error) {
	return string(s), nil
}

func TestHandleGenerate_NoRecipesIsNotRecorded(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty array", raw: "[]"},
		{name: "null", raw: "null"},
		{name: "empty wrapped", raw: `{"recipes":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, generation.NewClient(rawStrategy(tt.raw)))

			rr := env.do(t, http.MethodPost, "/api/recipes/generate", GenerateRequest{
				Preferences: recipe.Preferences{Ingredients: "Eggs"},
			})
			require.Equal(t, http.StatusBadGateway, rr.Code, rr.Body.String())

			resp := decode[errorBody](t, rr)
			assert.Equal(t, apperrors.ErrorTypeEmptyResponse, resp.Error.Type)

			listing := decode[history.Listing](t, env.do(t, http.MethodGet, "/api/history", nil))
			assert.Empty(t, listing.Local)
		})
	}
}

func TestHandleGenerate_SupersededResultIsDropped(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32

	env := newTestEnv(t, generatorFunc(func(context.Context, recipe.Preferences, i18n.Language) (recipe.Batch, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			return batch("First"), nil
		}
		return batch("Second"), nil
	}))

	body := GenerateRequest{Preferences: recipe.Preferences{Ingredients: "Eggs"}}
	first := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		first <- env.do(t, http.MethodPost, "/api/recipes/generate", body)
	}()

	<-started
	second := env.do(t, http.MethodPost, "/api/recipes/generate", body)
	require.Equal(t, http.StatusOK, second.Code)

	close(release)
	stale := <-first
	require.Equal(t, http.StatusConflict, stale.Code)
	assert.Equal(t, apperrors.ErrorTypeSuperseded, decode[errorBody](t, stale).Error.Type)

	listing := decode[history.Listing](t, env.do(t, http.MethodGet, "/api/history", nil))
	require.Len(t, listing.Local, 1)
	assert.Equal(t, "Second", listing.Local[0].SummaryTitle)
}

func TestHandleGenerate_RequiresDeviceID(t *testing.T) {
	env := newTestEnv(t, staticGenerator(batch("Soup"), nil))

	req := httptest.NewRequest(http.MethodPost, "/api/recipes/generate",
		bytes.NewBufferString(`{"preferences":{"ingredients":"Eggs"}}`))
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleGenerate_InvalidBody(t *testing.T) {
	env := newTestEnv(t, staticGenerator(batch("Soup"), nil))

	req := httptest.NewRequest(http.MethodPost, "/api/recipes/generate", bytes.NewBufferString("{"))
	req.Header.Set(middleware.DeviceIDHeader, "device-1")
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "INVALID_BODY", decode[errorBody](t, rr).Error.Code)
}

func TestHandlePreview(t *testing.T) {
	env := newTestEnv(t, staticGenerator(nil, nil))

	rr := env.do(t, http.MethodPost, "/api/recipes/preview", PreviewRequest{Title: "Mapo Tofu", Size: "2K"})
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[PreviewResponse](t, rr)
	assert.Equal(t, "image/png", resp.MIMEType)
	assert.Equal(t, "aGk=", resp.Data)
	assert.Equal(t, "data:image/png;base64,aGk=", resp.DataURL)
	assert.Equal(t, imagegen.Size2K, env.previewer.size)
}

func TestHandlePreview_Errors(t *testing.T) {
	t.Run("missing title", func(t *testing.T) {
		env := newTestEnv(t, staticGenerator(nil, nil))
		rr := env.do(t, http.MethodPost, "/api/recipes/preview", PreviewRequest{})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("no image", func(t *testing.T) {
		env := newTestEnv(t, staticGenerator(nil, nil))
		env.previewer.err = apperrors.NewMalformedResponseError("no image generated", "NO_IMAGE", nil)

		rr := env.do(t, http.MethodPost, "/api/recipes/preview", PreviewRequest{Language: "zh-CN", Title: "Soup"})
		require.Equal(t, http.StatusBadGateway, rr.Code)

		resp := decode[errorBody](t, rr)
		assert.Equal(t, apperrors.ErrorTypeMalformedResponse, resp.Error.Type)
		assert.Equal(t, i18n.MessagesFor(i18n.SimplifiedChinese).ErrorImage, resp.Error.Message)
		assert.Equal(t, "no image generated", resp.Error.Detail)
	})
}

func TestHandleChat(t *testing.T) {
	env := newTestEnv(t, staticGenerator(nil, nil))

	transcript := decode[TranscriptResponse](t, env.do(t, http.MethodGet, "/api/chat?language=en", nil))
	require.Len(t, transcript.Transcript, 1)
	assert.Equal(t, chat.RoleModel, transcript.Transcript[0].Role)

	rr := env.do(t, http.MethodPost, "/api/chat", ChatRequest{Language: "en", Message: "What replaces tofu?"})
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[ChatResponse](t, rr)
	assert.False(t, resp.Failed)
	assert.Equal(t, "Use silken tofu.", resp.Reply.Text)
	require.Len(t, resp.Transcript, 3)
	assert.Equal(t, "What replaces tofu?", resp.Transcript[1].Text)
}

func TestHandleChat_ProviderFailureStaysInTranscript(t *testing.T) {
	env := newTestEnv(t, staticGenerator(nil, nil))
	env.chat.err = errors.New("quota exceeded")

	rr := env.do(t, http.MethodPost, "/api/chat", ChatRequest{Language: "ko", Message: "Hello"})
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[ChatResponse](t, rr)
	assert.True(t, resp.Failed)
	assert.Equal(t, i18n.MessagesFor(i18n.Korean).ChatError, resp.Reply.Text)
	assert.Len(t, resp.Transcript, 3)
}

func TestHandleChat_EmptyMessage(t *testing.T) {
	env := newTestEnv(t, staticGenerator(nil, nil))

	rr := env.do(t, http.MethodPost, "/api/chat", ChatRequest{Message: "  "})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleClearHistory(t *testing.T) {
	env := newTestEnv(t, staticGenerator(batch("Soup"), nil))

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/recipes/generate",
		GenerateRequest{Preferences: recipe.Preferences{Ingredients: "Leeks"}}).Code)

	rr := env.do(t, http.MethodDelete, "/api/history", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	listing := decode[history.Listing](t, env.do(t, http.MethodGet, "/api/history", nil))
	assert.Empty(t, listing.Local)
}

func TestHandleConsent(t *testing.T) {
	env := newTestEnv(t, staticGenerator(nil, nil))

	consent := decode[localstate.Consent](t, env.do(t, http.MethodGet, "/api/consent", nil))
	assert.False(t, consent.Decided)

	accepted := true
	rr := env.do(t, http.MethodPut, "/api/consent", ConsentRequest{Accepted: &accepted})
	require.Equal(t, http.StatusOK, rr.Code)

	consent = decode[localstate.Consent](t, env.do(t, http.MethodGet, "/api/consent", nil))
	assert.Equal(t, localstate.Consent{Decided: true, Accepted: true}, consent)

	value, err := env.state.Get(context.Background(), localstate.ConsentKey("device-1"))
	require.NoError(t, err)
	assert.Equal(t, "true", value)

	rr = env.do(t, http.MethodPut, "/api/consent", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
