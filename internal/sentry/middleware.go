package sentry

import (
	"net/http"

	"github.com/getsentry/sentry-go"
)

// HTTPMiddleware gives every request its own hub, tags it with the device
// id and turns panics into a 500 after reporting them.
func HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub := sentry.GetHubFromContext(r.Context())
		if hub == nil {
			hub = sentry.CurrentHub().Clone()
		}
		hub.Scope().SetRequest(r)
		if deviceID := r.Header.Get("X-Device-ID"); deviceID != "" {
			hub.Scope().SetTag("device_id", deviceID)
		}

		ctx := sentry.SetHubOnContext(r.Context(), hub)

		defer func() {
			if err := recover(); err != nil {
				hub.RecoverWithContext(ctx, err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":{"type":"INTERNAL_ERROR","code":"PANIC","message":"Internal server error"}}`))
			}
		}()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
