package worker

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/culinai/chef/internal/telemetry"
	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// OTelMiddleware runs each task inside a consumer span.
func OTelMiddleware(h asynq.Handler) asynq.Handler {
	return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
		taskID, _ := asynq.GetTaskID(ctx)
		queueName, _ := asynq.GetQueueName(ctx)
		retryCount, _ := asynq.GetRetryCount(ctx)

		ctx, span := telemetry.Tracer("worker").Start(ctx, fmt.Sprintf("task:%s", t.Type()),
			trace.WithSpanKind(trace.SpanKindConsumer))
		defer span.End()

		span.SetAttributes(
			attribute.String("task.id", taskID),
			attribute.String("task.type", t.Type()),
			attribute.String("task.queue", queueName),
			attribute.Int("task.retry_count", retryCount),
		)

		err := h.ProcessTask(ctx, t)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	})
}

// SentryMiddleware reports failed tasks with their asynq metadata as tags.
func SentryMiddleware(h asynq.Handler) asynq.Handler {
	return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
		taskID, _ := asynq.GetTaskID(ctx)
		queueName, _ := asynq.GetQueueName(ctx)
		retryCount, _ := asynq.GetRetryCount(ctx)

		hub := sentry.CurrentHub().Clone()
		hub.Scope().SetTags(map[string]string{
			"task_type":   t.Type(),
			"task_id":     taskID,
			"queue":       queueName,
			"retry_count": strconv.Itoa(retryCount),
		})
		ctx = sentry.SetHubOnContext(ctx, hub)

		err := h.ProcessTask(ctx, t)
		if err != nil {
			hub.CaptureException(err)
		}
		return err
	})
}

// Metrics counts tasks by type and outcome.
type Metrics struct {
	tasks    metric.Int64Counter
	duration metric.Float64Histogram
}

func NewMetrics() (*Metrics, error) {
	meter := otel.Meter("culinai/worker")

	tasks, err := meter.Int64Counter(
		"worker.tasks.total",
		metric.WithDescription("Total number of worker tasks processed"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"worker.task.duration",
		metric.WithDescription("Duration of worker tasks"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{tasks: tasks, duration: duration}, nil
}

// Middleware records every task. A nil *Metrics records nothing.
func (m *Metrics) Middleware(h asynq.Handler) asynq.Handler {
	return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
		start := time.Now()
		err := h.ProcessTask(ctx, t)
		if m == nil {
			return err
		}

		status := "success"
		if err != nil {
			status = "error"
		}
		typeAttr := attribute.String("task.type", t.Type())
		m.tasks.Add(ctx, 1, metric.WithAttributes(typeAttr, attribute.String("status", status)))
		m.duration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(typeAttr))
		return err
	})
}
