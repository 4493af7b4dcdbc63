package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/culinai/chef/internal/history"
	"github.com/hibiken/asynq"
)

// HistoryProcessor performs queued remote history inserts.
type HistoryProcessor struct {
	backend     history.Remote
	broadcaster Broadcaster
}

// NewHistoryProcessor writes to backend. broadcaster may be nil.
func NewHistoryProcessor(backend history.Remote, broadcaster Broadcaster) *HistoryProcessor {
	return &HistoryProcessor{backend: backend, broadcaster: broadcaster}
}

// HandleRecordHistory inserts the item. Tasks are enqueued without retries,
// so a failure here is logged and the task archived.
func (p *HistoryProcessor) HandleRecordHistory(ctx context.Context, t *asynq.Task) error {
	payload, err := history.ParseRecordPayload(t)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	slog.InfoContext(ctx, "Recording remote history", "user_id", payload.UserID, "item_id", payload.Item.ID)

	if err := p.backend.Insert(ctx, payload.UserID, payload.Item); err != nil {
		slog.ErrorContext(ctx, "Remote history insert failed",
			"user_id", payload.UserID,
			"item_id", payload.Item.ID,
			"error", err,
		)
		return fmt.Errorf("insert history %s: %w", payload.Item.ID, err)
	}

	if p.broadcaster != nil {
		update := HistoryUpdate{ItemID: payload.Item.ID, SummaryTitle: payload.Item.SummaryTitle}
		if err := p.broadcaster.Broadcast(ctx, payload.UserID, update); err != nil {
			slog.WarnContext(ctx, "History broadcast failed", "user_id", payload.UserID, "error", err)
		}
	}
	return nil
}
