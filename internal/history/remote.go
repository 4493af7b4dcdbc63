package history

import "context"

// Remote is the per-user history kept by a backend service.
type Remote interface {
	Insert(ctx context.Context, userID string, item Item) error
	// Recent returns at most limit items, newest first.
	Recent(ctx context.Context, userID string, limit int) ([]Item, error)
}
