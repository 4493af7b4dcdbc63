package history

import (
	"context"
	"log/slog"
	"time"

	apperrors "github.com/culinai/chef/internal/errors"
	"github.com/culinai/chef/internal/i18n"
	"github.com/culinai/chef/internal/logger"
	"github.com/culinai/chef/internal/metrics"
	"github.com/culinai/chef/internal/recipe"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"
)

// Listing is both lists as shown on the history page.
type Listing struct {
	Local  []Item `json:"local"`
	Remote []Item `json:"remote"`
}

// Store writes every generation to the device list and, for signed-in
// users, to the remote list too. The two are independent: neither is
// derived from the other.
type Store struct {
	local  *Local
	remote Remote
	now    func() time.Time
}

// NewStore creates a store. remote may be nil to disable remote history.
func NewStore(local *Local, remote Remote) *Store {
	return &Store{local: local, remote: remote, now: time.Now}
}

func (s *Store) RemoteEnabled() bool {
	return s.remote != nil
}

// Record saves a generation. The local write completes before the remote
// one starts. Failures of either are logged and never returned.
func (s *Store) Record(ctx context.Context, owner Owner, lang i18n.Language, batch recipe.Batch) Item {
	item := NewItem(lang, batch, s.now())

	err := s.local.Add(ctx, owner.DeviceID, item)
	recordWrite(ctx, "local", err)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to save local history",
			"device_id", owner.DeviceID,
			"error", err,
			logger.WithTraceContext(ctx),
		)
	}

	if !owner.Authenticated() || s.remote == nil {
		return item
	}

	err = s.remote.Insert(ctx, owner.UserID, item)
	recordWrite(ctx, "remote", err)
	if err != nil {
		err = apperrors.NewRemoteStoreError("failed to save remote history", "REMOTE_INSERT_FAILED", err)
		slog.WarnContext(ctx, "Remote history insert failed",
			"user_id", owner.UserID,
			"item_id", item.ID,
			"error", err,
			logger.WithTraceContext(ctx),
		)
	}
	return item
}

// List reads both lists concurrently. A remote failure yields an empty
// remote list; a local failure is returned.
func (s *Store) List(ctx context.Context, owner Owner) (Listing, error) {
	listing := Listing{Local: []Item{}, Remote: []Item{}}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.local.List(gctx, owner.DeviceID)
		if err != nil {
			return apperrors.NewInternalError("failed to read local history", "LOCAL_READ_FAILED", err)
		}
		listing.Local = items
		return nil
	})

	if owner.Authenticated() && s.remote != nil {
		g.Go(func() error {
			items, err := s.remote.Recent(gctx, owner.UserID, RemoteLimit)
			if err != nil {
				slog.WarnContext(ctx, "Remote history read failed",
					"user_id", owner.UserID,
					"error", apperrors.NewRemoteStoreError("failed to read remote history", "REMOTE_READ_FAILED", err),
					logger.WithTraceContext(ctx),
				)
				return nil
			}
			if items != nil {
				listing.Remote = items
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Listing{}, err
	}
	return listing, nil
}

// Clear empties the device list. Remote history is kept.
func (s *Store) Clear(ctx context.Context, owner Owner) error {
	if err := s.local.Clear(ctx, owner.DeviceID); err != nil {
		return apperrors.NewInternalError("failed to clear local history", "LOCAL_CLEAR_FAILED", err)
	}
	return nil
}

func recordWrite(ctx context.Context, store string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	metrics.HistoryWritesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("store", store),
		attribute.String("outcome", outcome),
	))
}
