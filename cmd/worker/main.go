package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/culinai/chef/internal/config"
	"github.com/culinai/chef/internal/db"
	"github.com/culinai/chef/internal/history"
	"github.com/culinai/chef/internal/logger"
	"github.com/culinai/chef/internal/sentry"
	"github.com/culinai/chef/internal/telemetry"
	"github.com/culinai/chef/internal/worker"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	defer sentry.Recover()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.RedisURL == "" {
		log.Fatalf("REDIS_URL is required to run the worker")
	}

	// Initialize logger with OTel support
	slog.SetDefault(logger.New(cfg.Env))

	// Initialize telemetry
	if cfg.OtelExporterOTLPEndpoint != "" {
		shutdown, err := telemetry.InitTelemetry(ctx, cfg.ServiceName+"-worker", cfg.ServiceVersion, cfg.Env,
			cfg.OtelExporterOTLPEndpoint, telemetry.ParseHeaders(cfg.OtelExporterOTLPHeaders))
		if err != nil {
			slog.Warn("Failed to init telemetry", "error", err)
		} else {
			defer shutdown(ctx)
		}
	}

	// Initialize Sentry
	if err := sentry.Init(cfg.SentryDSN, cfg.Env, cfg.ServiceName+"-worker", cfg.ServiceVersion); err != nil {
		slog.Warn("Failed to init Sentry", "error", err)
	} else if cfg.SentryDSN != "" {
		defer sentry.Flush(2 * time.Second)
	}

	var backend history.Remote
	switch cfg.HistoryRemote() {
	case config.HistoryRemotePostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()

		queries := db.New(pool)
		if err := queries.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to ensure schema: %v", err)
		}
		backend = history.NewPostgresRemote(queries)
	case config.HistoryRemoteSupabase:
		backend = history.NewSupabaseRemote(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey)
	default:
		log.Fatalf("The worker needs a remote history backend (DATABASE_URL or SUPABASE_URL)")
	}

	// Signed-in pages refresh their history list on broadcast
	var broadcaster worker.Broadcaster
	if cfg.SupabaseURL != "" && cfg.SupabaseServiceRoleKey != "" {
		broadcaster = worker.NewRealtimeBroadcaster(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey)
	}

	workerMetrics, err := worker.NewMetrics()
	if err != nil {
		slog.Warn("Failed to init worker metrics", "error", err)
	}

	processor := worker.NewHistoryProcessor(backend, broadcaster)

	// Asynq server
	srv, err := worker.NewServer(cfg.RedisURL, 5)
	if err != nil {
		log.Fatalf("Failed to create worker server: %v", err)
	}

	mux := worker.NewMux(processor, workerMetrics)

	// Handle shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutting down worker...")
		srv.Shutdown()
	}()

	slog.Info("Starting worker", "history_remote", cfg.HistoryRemote())

	if err := srv.Run(mux); err != nil {
		log.Fatalf("Worker failed: %v", err)
	}
}
