// Package localstate persists small per-device text values: the recipe
// history list and the cookie consent flag.
package localstate

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been set or was
// deleted.
var ErrNotFound = errors.New("localstate: key not found")

// Store is a plain text key/value store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

func HistoryKey(deviceID string) string {
	return "culinai_history:" + deviceID
}

func ConsentKey(deviceID string) string {
	return "culinai_cookie_consent:" + deviceID
}
