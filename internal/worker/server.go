package worker

import (
	"fmt"

	"github.com/culinai/chef/internal/history"
	"github.com/hibiken/asynq"
)

// NewServer creates the asynq server. History writes are small, so a
// handful of workers is plenty.
func NewServer(redisURL string, concurrency int) (*asynq.Server, error) {
	opt, err := ParseRedisURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	if concurrency <= 0 {
		concurrency = 5
	}

	return asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{"default": 1},
	}), nil
}

// NewMux routes every task type to its handler behind the tracing, Sentry
// and metrics middlewares.
func NewMux(processor *HistoryProcessor, m *Metrics) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Use(OTelMiddleware, SentryMiddleware, m.Middleware)
	mux.HandleFunc(history.TypeRecordHistory, processor.HandleRecordHistory)
	return mux
}
