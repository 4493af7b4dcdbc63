package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// TypeRecordHistory is the asynq task type for deferred remote inserts.
const TypeRecordHistory = "history:record"

type RecordPayload struct {
	UserID string `json:"user_id"`
	Item   Item   `json:"item"`
}

// NewRecordTask builds a task that is never retried: a lost remote write is
// acceptable, a duplicate one is not useful.
func NewRecordTask(userID string, item Item) (*asynq.Task, error) {
	data, err := json.Marshal(RecordPayload{UserID: userID, Item: item})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRecordHistory, data, asynq.MaxRetry(0)), nil
}

func ParseRecordPayload(t *asynq.Task) (RecordPayload, error) {
	var payload RecordPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return RecordPayload{}, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	if payload.UserID == "" || payload.Item.ID == "" {
		return RecordPayload{}, fmt.Errorf("incomplete %s payload", TypeRecordHistory)
	}
	return payload, nil
}

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

var _ Enqueuer = (*asynq.Client)(nil)

// QueuedRemote hands inserts to the worker and reads from the backend
// directly.
type QueuedRemote struct {
	enqueuer Enqueuer
	backend  Remote
}

func NewQueuedRemote(enqueuer Enqueuer, backend Remote) *QueuedRemote {
	return &QueuedRemote{enqueuer: enqueuer, backend: backend}
}

func (r *QueuedRemote) Insert(ctx context.Context, userID string, item Item) error {
	task, err := NewRecordTask(userID, item)
	if err != nil {
		return err
	}
	if _, err := r.enqueuer.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue %s: %w", TypeRecordHistory, err)
	}
	return nil
}

func (r *QueuedRemote) Recent(ctx context.Context, userID string, limit int) ([]Item, error) {
	return r.backend.Recent(ctx, userID, limit)
}
