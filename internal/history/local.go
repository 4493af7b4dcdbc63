package history

import (
	"context"
	"encoding/json"
	"errors"
	"hash/fnv"
	"log/slog"
	"sync"

	"github.com/culinai/chef/internal/localstate"
	"github.com/culinai/chef/internal/metrics"
)

const lockStripes = 64

// Local keeps the per-device list in the state store as one JSON document,
// newest first. Mutations for the same device are serialized.
type Local struct {
	store localstate.Store
	locks [lockStripes]sync.Mutex
}

func NewLocal(store localstate.Store) *Local {
	return &Local{store: store}
}

func (l *Local) lock(deviceID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(deviceID))
	return &l.locks[h.Sum32()%lockStripes]
}

func (l *Local) List(ctx context.Context, deviceID string) ([]Item, error) {
	mu := l.lock(deviceID)
	mu.Lock()
	defer mu.Unlock()
	return l.read(ctx, deviceID)
}

// Add prepends item and drops entries past LocalCap.
func (l *Local) Add(ctx context.Context, deviceID string, item Item) error {
	mu := l.lock(deviceID)
	mu.Lock()
	defer mu.Unlock()

	items, err := l.read(ctx, deviceID)
	if err != nil {
		return err
	}

	items = append([]Item{item}, items...)
	if len(items) > LocalCap {
		items = items[:LocalCap]
	}

	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return l.store.Set(ctx, localstate.HistoryKey(deviceID), string(data))
}

func (l *Local) Clear(ctx context.Context, deviceID string) error {
	mu := l.lock(deviceID)
	mu.Lock()
	defer mu.Unlock()
	return l.store.Delete(ctx, localstate.HistoryKey(deviceID))
}

func (l *Local) read(ctx context.Context, deviceID string) ([]Item, error) {
	raw, err := l.store.Get(ctx, localstate.HistoryKey(deviceID))
	if errors.Is(err, localstate.ErrNotFound) {
		return []Item{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		slog.WarnContext(ctx, "Discarding unreadable local history", "device_id", deviceID, "error", err)
		metrics.HistoryLocalDiscardedTotal.Add(ctx, 1)
		return []Item{}, nil
	}
	return items, nil
}
