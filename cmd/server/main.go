package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/culinai/chef/internal/api"
	"github.com/culinai/chef/internal/config"
	"github.com/culinai/chef/internal/db"
	"github.com/culinai/chef/internal/history"
	"github.com/culinai/chef/internal/i18n"
	"github.com/culinai/chef/internal/localstate"
	"github.com/culinai/chef/internal/logger"
	"github.com/culinai/chef/internal/metrics"
	"github.com/culinai/chef/internal/middleware"
	"github.com/culinai/chef/internal/sentry"
	"github.com/culinai/chef/internal/services/chat"
	"github.com/culinai/chef/internal/services/gemini"
	"github.com/culinai/chef/internal/services/generation"
	"github.com/culinai/chef/internal/services/imagegen"
	"github.com/culinai/chef/internal/telemetry"
	"github.com/culinai/chef/internal/worker"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	_ "github.com/joho/godotenv/autoload"
	"github.com/riandyrn/otelchi"
	otelchimetric "github.com/riandyrn/otelchi/metric"
	"go.opentelemetry.io/otel"
)

func main() {
	defer sentry.Recover()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger with OTel support
	slog.SetDefault(logger.New(cfg.Env))

	// Initialize telemetry
	if cfg.OtelExporterOTLPEndpoint != "" {
		shutdown, err := telemetry.InitTelemetry(ctx, cfg.ServiceName, cfg.ServiceVersion, cfg.Env,
			cfg.OtelExporterOTLPEndpoint, telemetry.ParseHeaders(cfg.OtelExporterOTLPHeaders))
		if err != nil {
			slog.Warn("Failed to init telemetry", "error", err)
		} else {
			defer shutdown(ctx)
		}
	}

	// Initialize Sentry
	if err := sentry.Init(cfg.SentryDSN, cfg.Env, cfg.ServiceName, cfg.ServiceVersion); err != nil {
		slog.Warn("Failed to init Sentry", "error", err)
	} else if cfg.SentryDSN != "" {
		defer sentry.Flush(2 * time.Second)
	}

	// Initialize business metrics
	if err := metrics.Init(); err != nil {
		slog.Warn("Failed to init business metrics", "error", err)
	}

	// Every option key must have a label in every language
	if err := i18n.Validate(); err != nil {
		log.Fatalf("Translation tables are incomplete: %v", err)
	}

	// Gemini backs schema generation, previews and chat. Without a key
	// those features answer with a configuration error.
	var (
		models       gemini.ContentGenerator
		chatProvider chat.Provider
	)
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		models = client.Models
		chatProvider = chat.NewGeminiProvider(client.Chats, cfg.Chat.Model)
	} else {
		slog.Warn("GEMINI_API_KEY is not set; Gemini features are disabled")
	}

	generator := generation.NewClient(generation.NewStrategy(cfg.Generation, models, cfg.OpenAIKey, cfg.GroqKey))
	previewer := imagegen.NewClient(models, cfg.Image.Model)

	chats, err := chat.NewRegistry(chatProvider, cfg.Chat.MaxSessions)
	if err != nil {
		log.Fatalf("Failed to create chat registry: %v", err)
	}

	state, closeState, err := openState(cfg)
	if err != nil {
		log.Fatalf("Failed to open local state: %v", err)
	}
	defer closeState()

	remote, closeRemote, err := openRemote(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open remote history: %v", err)
	}
	defer closeRemote()

	historyStore := history.NewStore(history.NewLocal(state), remote)

	// API handlers
	apiServer := api.NewServer(generator, previewer, chats, historyStore, state)

	// Router
	r := chi.NewRouter()

	// Middleware
	r.Use(otelchi.Middleware(cfg.ServiceName,
		otelchi.WithChiRoutes(r),
		otelchi.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/health"
		}),
	))

	// HTTP metrics
	metricCfg := otelchimetric.NewBaseConfig(cfg.ServiceName, otelchimetric.WithMeterProvider(otel.GetMeterProvider()))
	r.Use(otelchimetric.NewRequestDurationMillis(metricCfg))
	r.Use(otelchimetric.NewRequestInFlight(metricCfg))
	r.Use(otelchimetric.NewResponseSizeBytes(metricCfg))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.DeviceIDHeader},
		AllowCredentials: true,
	}))

	r.Use(sentry.HTTPMiddleware)
	r.Use(middleware.DeviceID)
	r.Use(middleware.OptionalAuth(middleware.AuthConfig{
		SupabaseURL: cfg.SupabaseURL,
		JWTSecret:   cfg.SupabaseJWTSecret,
	}))

	apiServer.Routes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Handle shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		slog.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting server",
		"port", cfg.Port,
		"generation_provider", generator.Provider(),
		"history_remote", cfg.HistoryRemote(),
		"history_mode", cfg.History.Mode,
	)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
}

// openState picks Redis when REDIS_URL is set and a local directory
// otherwise.
func openState(cfg *config.Config) (localstate.Store, func(), error) {
	if cfg.RedisURL == "" {
		fs, err := localstate.NewFileStore(cfg.LocalStateDir)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	}

	client, err := localstate.NewRedisClient(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return localstate.NewRedisStore(client), func() { client.Close() }, nil
}

// openRemote returns a nil Remote when remote history is disabled. In queue
// mode inserts go through the worker and reads stay direct.
func openRemote(ctx context.Context, cfg *config.Config) (history.Remote, func(), error) {
	var (
		backend history.Remote
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.HistoryRemote() {
	case config.HistoryRemotePostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, pool.Close)

		queries := db.New(pool)
		if err := queries.EnsureSchema(ctx); err != nil {
			closeAll()
			return nil, nil, err
		}
		backend = history.NewPostgresRemote(queries)
	case config.HistoryRemoteSupabase:
		backend = history.NewSupabaseRemote(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey)
	default:
		return nil, func() {}, nil
	}

	if cfg.History.Mode == config.HistoryModeQueue {
		asynqClient, err := worker.NewClient(cfg.RedisURL)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, func() { asynqClient.Close() })
		backend = history.NewQueuedRemote(asynqClient, backend)
	}

	return backend, closeAll, nil
}
