package middleware

import (
	"context"
	"net/http"
	"strings"

	apperrors "github.com/culinai/chef/internal/errors"
)

const (
	DeviceIDHeader = "X-Device-ID"
	DeviceIDKey    contextKey = "deviceID"

	maxDeviceIDLength = 128
)

// DeviceID reads the per-browser identifier that scopes chat sessions,
// local history and consent. Handlers that need one call RequireDeviceID.
func DeviceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(DeviceIDHeader))
		if id != "" {
			r = r.WithContext(context.WithValue(r.Context(), DeviceIDKey, id))
		}
		next.ServeHTTP(w, r)
	})
}

func GetDeviceID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(DeviceIDKey).(string)
	return id, ok && id != ""
}

// RequireDeviceID returns the device id or a validation error naming the
// header.
func RequireDeviceID(ctx context.Context) (string, error) {
	id, ok := GetDeviceID(ctx)
	if !ok {
		return "", apperrors.NewValidationError(DeviceIDHeader+" header is required", "DEVICE_ID_REQUIRED",
			"Send a stable per-browser identifier in the "+DeviceIDHeader+" header.")
	}
	if len(id) > maxDeviceIDLength {
		return "", apperrors.NewValidationError(DeviceIDHeader+" header is too long", "DEVICE_ID_TOO_LONG", "")
	}
	return id, nil
}
