package api

import (
	"context"
	"net/http"

	"github.com/culinai/chef/internal/history"
	"github.com/culinai/chef/internal/i18n"
	"github.com/culinai/chef/internal/localstate"
	"github.com/culinai/chef/internal/recipe"
	"github.com/culinai/chef/internal/services/chat"
	"github.com/culinai/chef/internal/services/generation"
	"github.com/culinai/chef/internal/services/imagegen"
	"github.com/go-chi/chi/v5"
)

// Generator produces a recipe batch. *generation.Client satisfies it.
type Generator interface {
	Generate(ctx context.Context, prefs recipe.Preferences, lang i18n.Language) (recipe.Batch, error)
}

// Previewer renders a dish photo. *imagegen.Client satisfies it.
type Previewer interface {
	RenderPreview(ctx context.Context, title, description string, size imagegen.Size) (imagegen.Preview, error)
}

var (
	_ Generator = (*generation.Client)(nil)
	_ Previewer = (*imagegen.Client)(nil)
)

type Server struct {
	generator Generator
	tracker   *generation.Tracker
	previewer Previewer
	chats     *chat.Registry
	history   *history.Store
	state     localstate.Store
}

func NewServer(generator Generator, previewer Previewer, chats *chat.Registry, historyStore *history.Store, state localstate.Store) *Server {
	return &Server{
		generator: generator,
		tracker:   generation.NewTracker(),
		previewer: previewer,
		chats:     chats,
		history:   historyStore,
		state:     state,
	}
}

// Routes mounts the API. Auth and device middleware are applied by the
// caller so the same routes can be served behind different stacks.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HandleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/options", s.HandleOptions)
		r.Post("/recipes/generate", s.HandleGenerate)
		r.Post("/recipes/preview", s.HandlePreview)
		r.Get("/chat", s.HandleChatTranscript)
		r.Post("/chat", s.HandleChatSend)
		r.Get("/history", s.HandleListHistory)
		r.Delete("/history", s.HandleClearHistory)
		r.Get("/consent", s.HandleGetConsent)
		r.Put("/consent", s.HandleSetConsent)
	})
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
