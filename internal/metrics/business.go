package metrics

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter = otel.Meter("culinai/business")

	// Generation metrics
	RecipeGenerationsTotal   metric.Int64Counter
	RecipeGenerationDuration metric.Float64Histogram
	SupersededGenerations    metric.Int64Counter

	// Preview metrics
	ImagePreviewsTotal metric.Int64Counter

	// Chat metrics
	ChatTurnsTotal metric.Int64Counter

	// History metrics
	HistoryWritesTotal         metric.Int64Counter
	HistoryLocalDiscardedTotal metric.Int64Counter

	// External API metrics
	ExternalAPICallsTotal metric.Int64Counter
	ExternalAPIDuration   metric.Float64Histogram
)

// Instruments are created against the global delegating meter, so they are
// usable before a MeterProvider is installed and in tests.
func init() {
	if err := Init(); err != nil {
		panic(err)
	}
}

func Init() error {
	var err error

	RecipeGenerationsTotal, err = meter.Int64Counter(
		"recipe.generations.total",
		metric.WithDescription("Total number of recipe generation calls by provider and outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	RecipeGenerationDuration, err = meter.Float64Histogram(
		"recipe.generation.duration",
		metric.WithDescription("Duration of recipe generation calls"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.5, 1, 2, 5, 10, 20, 30, 60, 120),
	)
	if err != nil {
		return err
	}

	SupersededGenerations, err = meter.Int64Counter(
		"recipe.generations.superseded",
		metric.WithDescription("Generation results discarded because a newer request started"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ImagePreviewsTotal, err = meter.Int64Counter(
		"image.previews.total",
		metric.WithDescription("Total number of dish preview renders by outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ChatTurnsTotal, err = meter.Int64Counter(
		"chat.turns.total",
		metric.WithDescription("Total number of chat turns by language and outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	HistoryWritesTotal, err = meter.Int64Counter(
		"history.writes.total",
		metric.WithDescription("Total number of history writes by store and outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	HistoryLocalDiscardedTotal, err = meter.Int64Counter(
		"history.local.discarded.total",
		metric.WithDescription("Total number of unreadable local history lists that were discarded"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ExternalAPICallsTotal, err = meter.Int64Counter(
		"external.api.calls.total",
		metric.WithDescription("Total number of external API calls"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ExternalAPIDuration, err = meter.Float64Histogram(
		"external.api.duration",
		metric.WithDescription("Duration of external API calls"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30, 60),
	)
	if err != nil {
		return err
	}

	return nil
}
