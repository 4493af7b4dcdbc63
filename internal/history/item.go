// Package history records generated recipe batches: a capped list per
// device, and for signed-in users a remote list as well.
package history

import (
	"time"

	"github.com/culinai/chef/internal/i18n"
	"github.com/culinai/chef/internal/recipe"
	"github.com/google/uuid"
)

const (
	// LocalCap bounds the per-device list. The oldest entry is evicted.
	LocalCap = 10
	// RemoteLimit is how many remote entries List returns.
	RemoteLimit = 20
)

// Item is one generation. Timestamp is Unix milliseconds.
type Item struct {
	ID           string        `json:"id"`
	Timestamp    int64         `json:"timestamp"`
	Language     i18n.Language `json:"language,omitempty"`
	Recipes      recipe.Batch  `json:"recipes"`
	SummaryTitle string        `json:"summaryTitle"`
}

func NewItem(lang i18n.Language, batch recipe.Batch, at time.Time) Item {
	return Item{
		ID:           uuid.NewString(),
		Timestamp:    at.UnixMilli(),
		Language:     lang,
		Recipes:      batch,
		SummaryTitle: batch.SummaryTitle(),
	}
}

func (i Item) Time() time.Time {
	return time.UnixMilli(i.Timestamp)
}

// Owner identifies whose history is touched. UserID is empty for
// anonymous callers.
type Owner struct {
	DeviceID string
	UserID   string
}

func (o Owner) Authenticated() bool {
	return o.UserID != ""
}
