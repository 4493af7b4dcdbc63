package generation

import (
	"context"
	"log/slog"
	"time"

	apperrors "github.com/culinai/chef/internal/errors"
	"github.com/culinai/chef/internal/i18n"
	"github.com/culinai/chef/internal/logger"
	"github.com/culinai/chef/internal/metrics"
	"github.com/culinai/chef/internal/recipe"
	"github.com/culinai/chef/internal/services/ai"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Client turns preferences into a batch of recipes. It makes exactly one
// provider call per Generate and never retries.
type Client struct {
	strategy Strategy
}

func NewClient(strategy Strategy) *Client {
	return &Client{strategy: strategy}
}

// Provider names the strategy in use.
func (c *Client) Provider() string {
	return c.strategy.Name()
}

func (c *Client) Generate(ctx context.Context, prefs recipe.Preferences, lang i18n.Language) (recipe.Batch, error) {
	provider := c.strategy.Name()
	outcome := "success"
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		attrs := metric.WithAttributes(attribute.String("provider", provider), attribute.String("outcome", outcome))
		metrics.RecipeGenerationsTotal.Add(ctx, 1, attrs)
		metrics.RecipeGenerationDuration.Record(ctx, duration, attrs)
		metrics.ExternalAPICallsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("provider", provider)))
		metrics.ExternalAPIDuration.Record(ctx, duration, metric.WithAttributes(attribute.String("provider", provider)))
	}()

	prompt := ai.Compile(prefs, lang)

	raw, err := c.strategy.Complete(ctx, prompt)
	if err == nil {
		var batch recipe.Batch
		batch, err = ParseBatch(raw)
		if err == nil {
			warnIncomplete(ctx, provider, batch)
			return batch, nil
		}
	}

	outcome = string(apperrors.TypeOf(err))
	slog.ErrorContext(ctx, "Recipe generation failed",
		"provider", provider,
		"language", string(lang),
		"error", err,
		logger.WithTraceContext(ctx),
	)
	return nil, err
}

func warnIncomplete(ctx context.Context, provider string, batch recipe.Batch) {
	for i, r := range batch {
		if missing := r.MissingFields(); len(missing) > 0 {
			slog.WarnContext(ctx, "Generated recipe is missing fields",
				"provider", provider,
				"index", i,
				"title", r.Title,
				"missing", missing,
			)
		}
	}
}
